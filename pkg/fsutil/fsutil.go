// Package fsutil reads Markdown sources and writes configuration files for
// mdindent.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/maybe"
)

// DefaultFileMode is the permission mode for newly written files.
const DefaultFileMode os.FileMode = 0o644

// DefaultMaxFileSize is the largest source accepted by ReadFile and ReadStdin.
const DefaultMaxFileSize int64 = 10 << 20

// StdinPath is the path that names standard input.
const StdinPath = "-"

// StdinDisplayName is the path reported for content read from standard input.
const StdinDisplayName = "<stdin>"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the content exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// Size is the file size in bytes.
	Size int64
}

// ReadFile reads a file no larger than maxSize bytes. A maxSize of zero or
// less means DefaultMaxFileSize.
func ReadFile(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, stat.Size(), maxSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}

	info := &FileInfo{
		Path: path,
		Mode: stat.Mode(),
		Size: int64(len(content)),
	}

	return content, info, nil
}

// ReadStdin reads all of r, failing once more than maxSize bytes arrive.
func ReadStdin(ctx context.Context, r io.Reader, maxSize int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read stdin: %w", ctx.Err())
	default:
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	content, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, StdinDisplayName, maxSize)
	}

	return content, nil
}

// WriteFile replaces path with content, atomically where the platform
// allows it. A mode of zero means DefaultFileMode.
func WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write file: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	if err := maybe.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func categorize(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
