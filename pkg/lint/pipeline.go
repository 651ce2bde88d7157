package lint

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/langdetect"
)

// Categories of per-file failure. Pipeline errors wrap exactly one of them.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrFileTooLarge     = errors.New("file too large")
)

//nolint:gochecknoglobals // read-only
var fsErrCategories = []struct{ from, to error }{
	{fsutil.ErrNotFound, ErrFileNotFound},
	{fsutil.ErrPermissionDenied, ErrPermissionDenied},
	{fsutil.ErrTooLarge, ErrFileTooLarge},
}

// PipelineResult is the lint result of one file.
type PipelineResult struct {
	*FileResult

	Path string

	// Info is the file's state when read. Nil for standard input and
	// in-memory content.
	Info *fsutil.FileInfo
}

// Summary is a one-word-ish status for logs.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.FileResult == nil:
		return "not linted"
	case len(pr.RuleErrors) > 0:
		return "rule errors"
	case pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls how a file is read.
type PipelineOptions struct {
	// MaxFileSize caps the bytes read. Zero means fsutil.DefaultMaxFileSize.
	MaxFileSize int64

	// Stdin is read for the path "-".
	Stdin io.Reader
}

// DefaultPipelineOptions returns options with the default size cap.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{MaxFileSize: fsutil.DefaultMaxFileSize}
}

// Pipeline reads a document and lints it with Engine.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, or standard input for "-", and lints it. Read
// failures are wrapped in one of the Err* categories.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	if path == fsutil.StdinPath {
		if opts.Stdin == nil {
			return nil, fmt.Errorf("read %s: no input", fsutil.StdinDisplayName)
		}
		content, err := fsutil.ReadStdin(ctx, opts.Stdin, opts.MaxFileSize)
		if err != nil {
			return nil, categorizeError(err)
		}
		return p.ProcessContent(ctx, fsutil.StdinDisplayName, content, cfg)
	}

	content, info, err := fsutil.ReadFile(ctx, path, opts.MaxFileSize)
	if err != nil {
		return nil, categorizeError(err)
	}
	result, err := p.ProcessContent(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}
	result.Info = info
	return result, nil
}

// ProcessContent lints content already in memory. Binary content and
// parser errors are reported as ErrParseFailure.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}
	if langdetect.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s holds binary data", ErrParseFailure, path)
	}

	fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
	switch {
	case err == nil:
		return &PipelineResult{FileResult: fileResult, Path: path}, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
}

func categorizeError(err error) error {
	for _, c := range fsErrCategories {
		if errors.Is(err, c.from) {
			return fmt.Errorf("%w: %w", c.to, err)
		}
	}
	return err
}

// IsPipelineError reports whether err carries one of the Err* categories.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrFileTooLarge} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
