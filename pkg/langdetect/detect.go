// Package langdetect classifies files by language using go-enry. The linter
// uses it to decide which files hold Markdown and which paths are vendored.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Markdown is the go-enry name of the Markdown language.
const Markdown = "Markdown"

// markdownExtensions are always treated as Markdown, whatever go-enry thinks
// of them. ".md" is also claimed by GCC machine descriptions.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownExtensions = []string{".md", ".markdown", ".mdown", ".mkd", ".mkdn"}

// Extensions returns the file extensions recognised as Markdown without
// consulting go-enry.
func Extensions() []string {
	return slices.Clone(markdownExtensions)
}

// IsMarkdownPath reports whether path names a Markdown file. Known
// extensions match directly; any other extension matches when go-enry maps
// it to Markdown (".ronn", ".scd" and similar).
func IsMarkdownPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	if slices.Contains(markdownExtensions, ext) {
		return true
	}

	lang, _ := enry.GetLanguageByExtension(filepath.Base(path))
	return lang == Markdown
}

// Detect returns the language of a file from its name and content, or ""
// when the content is binary or the language cannot be determined.
func Detect(path string, content []byte) string {
	if IsBinary(content) {
		return ""
	}
	return enry.GetLanguage(filepath.Base(path), content)
}

// IsBinary reports whether content looks like binary data.
func IsBinary(content []byte) bool {
	return len(content) > 0 && enry.IsBinary(content)
}

// IsVendored reports whether a slash- or OS-separated relative path lies in
// third-party code such as vendor/ or node_modules/. Directories should be
// passed with isDir set so that directory patterns match.
func IsVendored(relPath string, isDir bool) bool {
	p := filepath.ToSlash(relPath)
	if p == "" || p == "." {
		return false
	}
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return enry.IsVendor(p)
}
