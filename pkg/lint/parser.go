package lint

import (
	"context"

	"github.com/yaklabco/mdindent/pkg/mdast"
)

// Parser turns Markdown bytes into a positioned block tree.
//
// Parse must not mutate content or perform I/O. On success the snapshot has
// the given path, a copy of content, a Document root and File set on every
// node. On failure it returns nil and an error. Implementations used by a
// Runner are called from several goroutines at once.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
