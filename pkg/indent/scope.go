package indent

import (
	"slices"

	"github.com/yaklabco/mdindent/pkg/mdast"
)

// listFrame is an open list.
type listFrame struct {
	parent *listFrame
	node   *mdast.Node

	// ordered is true for numbered lists.
	ordered bool

	// base is the marker column of the list's first item.
	base int

	// items are the items entered so far, most recent last.
	items []*mdast.Node
}

// quoteFrame is an open blockquote.
type quoteFrame struct {
	parent *quoteFrame

	// marker is the column of the opening '>'.
	marker int

	// content is the column just past the '>' and one optional space.
	content int
}

// scope is the set of containers open around a node. It is passed by value
// and never mutated, so sibling subtrees cannot see each other's containers.
type scope struct {
	list  *listFrame
	quote *quoteFrame
}

// enterList returns the scope inside list.
func (s scope) enterList(list *mdast.Node) scope {
	base := list.Indent()
	if first := list.FirstChild; first != nil && first.Indent() >= 0 {
		base = first.Indent()
	}

	s.list = &listFrame{
		parent:  s.list,
		node:    list,
		ordered: list.IsOrderedList(),
		base:    base,
	}
	return s
}

// enterItem returns the scope inside item, which belongs to the current list.
func (s scope) enterItem(item *mdast.Node) scope {
	if s.list == nil {
		return s
	}

	frame := *s.list
	frame.items = append(slices.Clip(frame.items), item)
	s.list = &frame
	return s
}

// enterQuote returns the scope inside a blockquote whose '>' is at marker on
// line.
func (s scope) enterQuote(marker int, line []byte) scope {
	content := marker + 1
	if content < len(line) && (line[content] == ' ' || line[content] == '\t') {
		content++
	}

	s.quote = &quoteFrame{parent: s.quote, marker: marker, content: content}
	return s
}

// item returns the innermost open list item, or nil.
func (s scope) item() *mdast.Node {
	if s.list == nil || len(s.list.items) == 0 {
		return nil
	}
	return s.list.items[len(s.list.items)-1]
}

// outermostQuote returns the first blockquote opened in this scope, or nil.
func (s scope) outermostQuote() *quoteFrame {
	q := s.quote
	for q != nil && q.parent != nil {
		q = q.parent
	}
	return q
}

// expected resolves the 0-based column target must start at.
//
// An open list item wins over an open blockquote, which wins over the
// document's start indent. Inside an item the column is the list's base plus
// the item's marker width, except that an unordered list nested in an
// unordered item starts a fixed Indent columns past the item's marker.
func (r *run) expected(target *mdast.Node, sc scope) int {
	if item := sc.item(); item != nil {
		if target.Kind == mdast.NodeList && !target.IsOrderedList() && !sc.list.ordered {
			return item.Indent() + r.settings.Indent
		}
		return sc.list.base + MarkerWidth(item, r.lines)
	}

	if sc.quote != nil {
		return sc.quote.content
	}

	return r.settings.StartIndent
}
