// Package runner discovers Markdown files and lints them on a bounded
// worker pool.
package runner

import (
	"io"
	"runtime"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/langdetect"
)

// Options describes one run. Zero values take the defaults filled in by
// withDefaults.
type Options struct {
	// Paths are files or directories; "-" is standard input. Empty means
	// the working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process's.
	WorkingDir string

	// Extensions (lowercase, with dot) are linted when walking directories,
	// on top of what go-enry classifies as Markdown. Empty means
	// langdetect.Extensions.
	Extensions []string

	// ExcludeGlobs are doublestar patterns, from config and CLI, that
	// prune the walk.
	ExcludeGlobs []string

	// IncludeVendored enters vendor/, node_modules/ and the like.
	IncludeVendored bool
	FollowSymlinks  bool

	// Jobs caps the worker pool; zero or less means GOMAXPROCS.
	Jobs int

	// MaxFileSize in bytes; zero means fsutil.DefaultMaxFileSize.
	MaxFileSize int64

	Stdin  io.Reader
	Config *config.Config
}

func (o Options) withDefaults() Options {
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}
	if len(o.Extensions) == 0 {
		o.Extensions = langdetect.Extensions()
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = fsutil.DefaultMaxFileSize
	}
	return o
}
