package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/langdetect"
)

// Discover resolves opts.Paths to the files to lint, in argument order.
//
// Files named explicitly are always included, even when they do not exist,
// so that the pipeline can report them. Directories are walked in lexical
// order, keeping Markdown files and skipping hidden entries, vendored
// directories and anything matching opts.ExcludeGlobs. "-" stands for
// standard input. Duplicates are dropped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.Extensions,
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == fsutil.StdinPath {
			w.add(fsutil.StdinPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil || !info.IsDir() {
			w.add(absPath)
			continue
		}

		if err := w.walk(absPath); err != nil {
			return nil, err
		}
	}

	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker accumulates discovered files.
type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk adds the Markdown files under root.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		relPath := w.rel(root, path)

		if entry.IsDir() {
			if w.skipDir(entry.Name(), relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // Broken links are skipped.
			}
			if target.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(entry.Name(), relPath) {
					return nil
				}
				// WalkDir does not follow a symlinked root, so walk the target.
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // The link vanished.
				}
				return w.walk(resolved)
			}
		}

		if w.keepFile(entry.Name(), relPath) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// rel returns path relative to the working directory, slash-separated.
// Paths outside the working directory are taken relative to the walk root,
// so ignore patterns and vendor checks never see "..".
func (w *walker) rel(root, path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		relPath, err = filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
	}
	return filepath.ToSlash(relPath)
}

func (w *walker) skipDir(name, relPath string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if !w.opts.IncludeVendored && langdetect.IsVendored(relPath, true) {
		return true
	}
	return MatchesAny(relPath, w.opts.ExcludeGlobs)
}

func (w *walker) keepFile(name, relPath string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if !hasMatchingExtension(name, w.extensions) && !langdetect.IsMarkdownPath(name) {
		return false
	}
	return !MatchesAny(relPath, w.opts.ExcludeGlobs)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// MatchesAny reports whether relPath matches any doublestar pattern.
// Patterns without a slash also match against the last path element, so
// "CHANGELOG.md" ignores changelogs in every directory.
func MatchesAny(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	base := relPath[strings.LastIndex(relPath, "/")+1:]

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
