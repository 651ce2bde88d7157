package goldmark

import (
	"github.com/yaklabco/mdindent/pkg/mdast"
	"github.com/yuin/goldmark/ast"
)

// frame is an open container on the path from the document to a node.
type frame struct {
	// quote is true for blockquotes; list items otherwise.
	quote bool

	// line is the 1-based line where the container was opened.
	line int

	// offset is a list item's content offset relative to the content
	// position of its parent. Unused for blockquotes.
	offset int
}

// positioner assigns source ranges to mdast block nodes.
//
// Goldmark records segments for leaf blocks only. Leaves take their ranges
// from those segments; container starts and fence delimiters are found by
// walking the container prefixes of each raw line, in the same order the
// block parser consumed them.
type positioner struct {
	snap *mdast.FileSnapshot
}

// newPositioner creates a positioner for a snapshot whose Content and Lines
// are already populated.
func newPositioner(snap *mdast.FileSnapshot) *positioner {
	return &positioner{snap: snap}
}

// assignDocument positions every block in root, which must have been mapped
// from gmDoc.
func (p *positioner) assignDocument(root *mdast.Node, gmDoc ast.Node) {
	p.assignChildren(root, gmDoc, nil, 1)
	mdast.SetRange(root, 0, len(p.snap.Content))
}

// assignChildren positions the children of a container. The first child is
// searched for from line from and each later sibling after the previous one.
// It returns the last line used by any child, or from-1 if none was placed.
func (p *positioner) assignChildren(parent *mdast.Node, gmParent ast.Node, path []*frame, from int) int {
	end := from - 1
	next := from

	md, gm := parent.FirstChild, gmParent.FirstChild()
	for md != nil && gm != nil {
		last := p.assign(md, gm, path, next)
		if last >= next {
			end = max(end, last)
			next = last + 1
		}
		md, gm = md.Next, gm.NextSibling()
	}

	return end
}

// assign positions one node and returns the last line it occupies.
func (p *positioner) assign(node *mdast.Node, gm ast.Node, path []*frame, from int) int {
	switch node.Kind {
	case mdast.NodeList:
		return p.assignList(node, gm, path, from)
	case mdast.NodeListItem:
		return p.assignItem(node, gm, path, from)
	case mdast.NodeBlockquote:
		return p.assignQuote(node, gm, path, from)
	case mdast.NodeParagraph:
		return p.assignRuns(node, from)
	case mdast.NodeHeading:
		return p.assignHeading(node, path, from)
	case mdast.NodeThematicBreak:
		return p.assignBreak(node, path, from)
	case mdast.NodeCodeBlock:
		if fcb, ok := gm.(*ast.FencedCodeBlock); ok {
			return p.assignFence(node, fcb, path, from)
		}
		return p.assignSegments(node, gm, from)
	default:
		return p.assignSegments(node, gm, from)
	}
}

func (p *positioner) assignList(node *mdast.Node, gm ast.Node, path []*frame, from int) int {
	end := p.assignChildren(node, gm, path, from)
	if first := node.FirstChild; first != nil && !first.Range.IsEmpty() {
		mdast.SetRange(node, first.Range.StartOffset, childrenEnd(node, first.Range.EndOffset))
	}
	return end
}

func (p *positioner) assignItem(node *mdast.Node, gm ast.Node, path []*frame, from int) int {
	var attrs *mdast.ListAttrs
	if node.Parent != nil && node.Parent.Block != nil {
		attrs = node.Parent.Block.List
	}

	n, at, ok := p.locate(from, path, func(line []byte, at int) (int, bool) {
		pos, ok := mdast.SkipBlockIndent(line, at)
		if !ok {
			return 0, false
		}
		marker, ok := mdast.ParseListMarker(line, pos)
		if !ok || !markerFits(marker, attrs) {
			return 0, false
		}
		return pos, true
	})
	if !ok {
		return from - 1
	}

	line := p.snap.LineContent(n)
	base, _ := p.enter(n, path)
	marker, _ := mdast.ParseListMarker(line, at)
	item := &frame{line: n, offset: marker.ContentOffset() - base}

	end := max(p.assignChildren(node, gm, withFrame(path, item), n), n)

	markerEnd := p.offset(n, min(marker.Offset+marker.Glyph, len(line)))
	mdast.SetRange(node, p.offset(n, at), childrenEnd(node, markerEnd))
	return end
}

func (p *positioner) assignQuote(node *mdast.Node, gm ast.Node, path []*frame, from int) int {
	n, at, ok := p.locate(from, path, matchQuote)
	if !ok {
		return from - 1
	}

	quote := &frame{quote: true, line: n}
	end := max(p.assignChildren(node, gm, withFrame(path, quote), n), n)

	if node.Block != nil && node.Block.Blockquote != nil {
		node.Block.Blockquote.Markers = p.quoteMarkers(path, n, end)
	}

	mdast.SetRange(node, p.offset(n, at), childrenEnd(node, p.offset(n, at+1)))
	return end
}

// quoteMarkers records the '>' of a blockquote opened inside path on every
// line from first to last that carries it.
func (p *positioner) quoteMarkers(path []*frame, first, last int) []mdast.Position {
	var markers []mdast.Position
	for n := first; n <= last; n++ {
		at, ok := p.enter(n, path)
		if !ok {
			continue
		}
		if col, ok := matchQuote(p.snap.LineContent(n), at); ok {
			markers = append(markers, mdast.Position{Line: n, Column: col + 1})
		}
	}
	return markers
}

// assignRuns derives a leaf's range from its text runs.
func (p *positioner) assignRuns(node *mdast.Node, from int) int {
	first, last := node.FirstChild, node.LastChild
	if first == nil {
		return from - 1
	}
	mdast.SetRange(node, first.Range.StartOffset, last.Range.EndOffset)
	line, _ := p.snap.LineAt(last.Range.StartOffset)
	return line
}

func (p *positioner) assignHeading(node *mdast.Node, path []*frame, from int) int {
	if node.FirstChild == nil {
		return p.assignMatch(node, path, from, matchATX)
	}

	end := p.assignRuns(node, from)
	start, _ := p.snap.LineAt(node.Range.StartOffset)

	// A setext underline follows the last content line.
	at, ok := p.enter(start, path)
	if ok {
		if _, atx := matchATX(p.snap.LineContent(start), at); atx {
			return end
		}
	}
	if at, ok := p.enter(end+1, path); ok && isSetextUnderline(p.snap.LineContent(end+1), at) {
		end++
		mdast.SetRange(node, node.Range.StartOffset, p.lineEnd(end))
	}
	return end
}

func (p *positioner) assignBreak(node *mdast.Node, path []*frame, from int) int {
	return p.assignMatch(node, path, from, func(line []byte, at int) (int, bool) {
		if !mdast.IsThematicBreak(line, at) {
			return 0, false
		}
		pos, _ := mdast.SkipBlockIndent(line, at)
		return pos, true
	})
}

// assignMatch positions a single-line leaf at the first line accepted by match.
func (p *positioner) assignMatch(node *mdast.Node, path []*frame, from int, match matchFunc) int {
	n, at, ok := p.locate(from, path, match)
	if !ok {
		return from - 1
	}
	mdast.SetRange(node, p.offset(n, at), max(p.lineEnd(n), p.offset(n, at)+1))
	return n
}

func (p *positioner) assignFence(node *mdast.Node, fcb *ast.FencedCodeBlock, path []*frame, from int) int {
	open, fence, ok := p.openingFence(fcb, path, from)
	if !ok {
		return from - 1
	}

	attrs := node.Block.CodeBlock
	attrs.FenceChar = fence.Char
	attrs.FenceLength = fence.Length

	end := open
	if lines := fcb.Lines(); lines.Len() > 0 {
		end, _ = p.snap.LineAt(lines.At(lines.Len() - 1).Start)
	}

	if closing := end + 1; closing <= p.snap.LineCount() {
		if at, entered := p.enter(closing, path); entered {
			if col, closed := mdast.ParseClosingFence(p.snap.LineContent(closing), at, fence); closed {
				attrs.Closed = true
				attrs.Close = mdast.Position{Line: closing, Column: col + 1}
				end = closing
			}
		}
	}

	start := p.offset(open, fence.Offset)
	mdast.SetRange(node, start, max(p.lineEnd(end), start+fence.Length))
	return end
}

// openingFence finds the opening delimiter of a fenced code block. Goldmark
// keeps the info string segment on the opening line; otherwise the line
// before the first content line opens the fence.
func (p *positioner) openingFence(fcb *ast.FencedCodeBlock, path []*frame, from int) (int, mdast.Fence, bool) {
	hint := 0
	switch {
	case fcb.Info != nil:
		hint, _ = p.snap.LineAt(fcb.Info.Segment.Start)
	case fcb.Lines().Len() > 0:
		line, _ := p.snap.LineAt(fcb.Lines().At(0).Start)
		hint = line - 1
	}

	if hint >= from {
		if at, ok := p.enter(hint, path); ok {
			if fence, ok := mdast.ParseFence(p.snap.LineContent(hint), at); ok {
				return hint, fence, true
			}
		}
	}

	n, at, ok := p.locate(from, path, func(line []byte, at int) (int, bool) {
		fence, ok := mdast.ParseFence(line, at)
		return fence.Offset, ok
	})
	if !ok {
		return 0, mdast.Fence{}, false
	}
	fence, _ := mdast.ParseFence(p.snap.LineContent(n), at)
	return n, fence, true
}

// assignSegments positions a leaf from the segments of its goldmark node and
// block descendants.
func (p *positioner) assignSegments(node *mdast.Node, gm ast.Node, from int) int {
	start, stop, ok := blockSpan(gm)
	if !ok {
		return from - 1
	}
	stop = trimLineEnding(p.snap.Content, start, stop)
	if stop <= start {
		stop = start + 1
	}
	mdast.SetRange(node, start, min(stop, len(p.snap.Content)))
	line, _ := p.snap.LineAt(max(stop-1, start))
	return line
}

// blockSpan returns the smallest byte span covering the line segments of gm
// and its block descendants, including an HTML block's closing line.
func blockSpan(gm ast.Node) (int, int, bool) {
	if gm.Type() != ast.TypeBlock {
		return 0, 0, false
	}

	start, stop, found := 0, 0, false
	include := func(lo, hi int) {
		if lo < 0 || hi <= lo {
			return
		}
		if !found || lo < start {
			start = lo
		}
		if !found || hi > stop {
			stop = hi
		}
		found = true
	}

	lines := gm.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		include(seg.Start, seg.Stop)
	}
	if html, ok := gm.(*ast.HTMLBlock); ok && html.HasClosure() {
		include(html.ClosureLine.Start, html.ClosureLine.Stop)
	}
	for child := gm.FirstChild(); child != nil; child = child.NextSibling() {
		if lo, hi, ok := blockSpan(child); ok {
			include(lo, hi)
		}
	}

	return start, stop, found
}

// matchFunc reports whether a container or leaf begins at or after offset at
// in line, returning the offset of its first significant byte.
type matchFunc func(line []byte, at int) (int, bool)

// locate returns the first line at or after from whose container prefixes,
// walked through path, are followed by a construct accepted by match.
func (p *positioner) locate(from int, path []*frame, match matchFunc) (int, int, bool) {
	for n := max(from, 1); n <= p.snap.LineCount(); n++ {
		at, ok := p.enter(n, path)
		if !ok {
			continue
		}
		if col, ok := match(p.snap.LineContent(n), at); ok {
			return n, col, true
		}
	}
	return 0, 0, false
}

// enter walks the prefixes of the containers in path on line n and returns
// the offset where the innermost container's content begins. It returns
// false if the line does not continue every container in path.
func (p *positioner) enter(n int, path []*frame) (int, bool) {
	if n < 1 || n > p.snap.LineCount() {
		return 0, false
	}

	line := p.snap.LineContent(n)
	pos := 0

	for _, f := range path {
		switch {
		case f.quote:
			at, ok := matchQuote(line, pos)
			if !ok {
				return pos, false
			}
			pos = at + 1
			if pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
				pos++
			}

		case f.line == n:
			at, ok := mdast.SkipBlockIndent(line, pos)
			if !ok {
				return pos, false
			}
			marker, ok := mdast.ParseListMarker(line, at)
			if !ok {
				return pos, false
			}
			pos = min(marker.ContentOffset(), len(line))

		default:
			if mdast.IsBlank(line[pos:]) {
				return len(line), true
			}
			if leadingSpaces(line[pos:]) < f.offset {
				return pos, false
			}
			pos += f.offset
		}
	}

	return pos, true
}

// offset converts a 1-based line and 0-based byte column to a file offset.
func (p *positioner) offset(line, col int) int {
	return p.snap.Lines[line-1].Start + col
}

// lineEnd returns the offset where the line's terminator begins.
func (p *positioner) lineEnd(line int) int {
	return p.snap.Lines[line-1].Break
}

func matchQuote(line []byte, at int) (int, bool) {
	pos, ok := mdast.SkipBlockIndent(line, at)
	if !ok || pos >= len(line) || line[pos] != '>' {
		return 0, false
	}
	return pos, true
}

func matchATX(line []byte, at int) (int, bool) {
	pos, ok := mdast.SkipBlockIndent(line, at)
	if !ok || pos >= len(line) || line[pos] != '#' {
		return 0, false
	}
	return pos, true
}

// isSetextUnderline reports whether the line is a run of '=' or '-' after at.
func isSetextUnderline(line []byte, at int) bool {
	pos, ok := mdast.SkipBlockIndent(line, at)
	if !ok || pos >= len(line) || (line[pos] != '=' && line[pos] != '-') {
		return false
	}
	c := line[pos]
	for pos < len(line) && line[pos] == c {
		pos++
	}
	return mdast.IsBlank(line[pos:])
}

// markerFits reports whether a marker can belong to a list with attrs.
func markerFits(marker mdast.ListMarker, attrs *mdast.ListAttrs) bool {
	if attrs == nil {
		return true
	}
	if attrs.Ordered {
		return marker.Kind == mdast.MarkerOrdered
	}
	return marker.Kind == mdast.MarkerBullet &&
		(attrs.BulletMarker == "" || attrs.BulletMarker[0] == marker.Delimiter)
}

// childrenEnd returns the larger of floor and the end offsets of node's
// children.
func childrenEnd(node *mdast.Node, floor int) int {
	end := floor
	for child := node.FirstChild; child != nil; child = child.Next {
		end = max(end, child.Range.EndOffset)
	}
	return end
}

// withFrame returns a copy of path with f appended.
func withFrame(path []*frame, f *frame) []*frame {
	out := make([]*frame, len(path), len(path)+1)
	copy(out, path)
	return append(out, f)
}

func leadingSpaces(b []byte) int {
	n := 0
	for n < len(b) && (b[n] == ' ' || b[n] == '\t') {
		n++
	}
	return n
}
