package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdindent/pkg/mdast"
)

// mapper mirrors goldmark's block tree as mdast nodes. Each goldmark block
// child yields exactly one mdast child, so positions can later be assigned
// by walking both trees in step. Inline content is not mapped: paragraphs
// and headings get one NodeText per physical line instead.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

func (m *mapper) mapChildren(from ast.Node, to *mdast.Node) {
	for child := from.FirstChild(); child != nil; child = child.NextSibling() {
		mdast.AppendChild(to, m.mapNode(child))
	}
}

func (m *mapper) mapNode(gm ast.Node) *mdast.Node {
	switch gm := gm.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return m.lineRuns(mdast.NewNode(mdast.NodeParagraph), gm.Lines())
	case *ast.Heading:
		node := mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gm.Level)
		return m.lineRuns(node, gm.Lines())
	case *ast.List:
		return m.list(gm)
	case *ast.ListItem:
		return m.container(mdast.NodeListItem, nil, gm)
	case *ast.Blockquote:
		return m.container(mdast.NodeBlockquote, mdast.NewBlockAttrs().WithBlockquote(&mdast.BlockquoteAttrs{}), gm)
	case *ast.FencedCodeBlock:
		code := &mdast.CodeBlockAttrs{}
		if gm.Info != nil {
			code.Info = string(gm.Info.Segment.Value(m.content))
		}
		return withAttrs(mdast.NodeCodeBlock, mdast.NewBlockAttrs().WithCodeBlock(code))
	case *ast.CodeBlock:
		return withAttrs(mdast.NodeCodeBlock, mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Indented: true}))
	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)
	case *ast.HTMLBlock:
		return mdast.NewNode(mdast.NodeHTMLBlock)
	default:
		// GFM tables and other extension blocks.
		return mdast.NewNode(mdast.NodeRaw)
	}
}

func withAttrs(kind mdast.NodeKind, attrs *mdast.BlockAttrs) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Block = attrs
	return node
}

func (m *mapper) container(kind mdast.NodeKind, attrs *mdast.BlockAttrs, gm ast.Node) *mdast.Node {
	node := withAttrs(kind, attrs)
	m.mapChildren(gm, node)
	return node
}

func (m *mapper) list(list *ast.List) *mdast.Node {
	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if attrs.Ordered {
		attrs.Delimiter = string(list.Marker)
	} else {
		attrs.BulletMarker = string(list.Marker)
	}
	return m.container(mdast.NodeList, mdast.NewBlockAttrs().WithList(attrs), list)
}

// lineRuns gives node one NodeText child per non-blank line segment. Goldmark
// has already stripped leading whitespace, so a run starts at the first
// content byte of its line.
func (m *mapper) lineRuns(node *mdast.Node, lines *text.Segments) *mdast.Node {
	for i := range lines.Len() {
		seg := lines.At(i)
		if stop := trimLineEnding(m.content, seg.Start, seg.Stop); stop > seg.Start {
			run := mdast.NewNode(mdast.NodeText)
			mdast.SetRange(run, seg.Start, stop)
			mdast.AppendChild(node, run)
		}
	}
	return node
}

// trimLineEnding backs stop up over any CR or LF bytes.
func trimLineEnding(content []byte, start, stop int) int {
	stop = min(stop, len(content))
	for stop > start && (content[stop-1] == '\n' || content[stop-1] == '\r') {
		stop--
	}
	return stop
}
