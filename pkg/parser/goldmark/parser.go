// Package goldmark builds mdast snapshots with the goldmark CommonMark
// parser. goldmark supplies the block structure; the exact columns that
// indentation checks need are recovered from the raw lines.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// Supported flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

var _ lint.Parser = (*Parser)(nil)

// Parser is a lint.Parser backed by goldmark. It is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors fall back to CommonMark.
func New(flavor string) *Parser {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		// Tables and task lists change which lines belong to a paragraph.
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Parser{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a snapshot of content. The returned snapshot owns a copy of
// content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap := mdast.NewFileSnapshot(path, bytes.Clone(content))
	if snap.Content == nil {
		snap.Content = []byte{}
	}

	doc := p.md.Parser().Parse(text.NewReader(snap.Content), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snap.Root = newMapper(snap.Content).mapDocument(doc)
	newPositioner(snap).assignDocument(snap.Root, doc)
	mdast.SetFile(snap.Root, snap)

	return snap, nil
}
