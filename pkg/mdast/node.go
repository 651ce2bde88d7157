package mdast

import (
	"iter"
	"slices"
)

// NodeKind says what a Node is. Only block structure is modelled; inline
// content is one NodeText per physical line.
type NodeKind uint16

const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeText
	NodeRaw // tables and anything else goldmark has no mapping for
)

//nolint:gochecknoglobals // read-only
var kindNames = [...]string{
	"Document", "Paragraph", "Heading", "List", "ListItem", "Blockquote",
	"CodeBlock", "ThematicBreak", "HTMLBlock", "Text", "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is one block of a parsed document, linked to its parent and
// siblings.
type Node struct {
	Kind NodeKind

	Parent, FirstChild, LastChild *Node
	Prev, Next                    *Node

	// Range starts at the node's first significant byte: a list item's
	// marker, a blockquote's '>', a fence's first character or the first
	// content byte of a text run. Synthetic nodes have an empty range.
	Range SourceRange

	File  *FileSnapshot
	Block *BlockAttrs
}

// IsContainer reports whether children of n sit inside its indentation:
// lists, list items and blockquotes.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case NodeList, NodeListItem, NodeBlockquote:
		return true
	}
	return false
}

func (n *Node) IsFenced() bool {
	return n.Kind == NodeCodeBlock && n.Block != nil && n.Block.CodeBlock != nil && !n.Block.CodeBlock.Indented
}

func (n *Node) IsOrderedList() bool {
	return n.Kind == NodeList && n.Block != nil && n.Block.List != nil && n.Block.List.Ordered
}

func (n *Node) HasChildren() bool { return n.FirstChild != nil }

// ChildNodes yields the direct children in document order.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := n.FirstChild; child != nil; child = child.Next {
			if !yield(child) {
				return
			}
		}
	}
}

func (n *Node) Children() []*Node { return slices.Collect(n.ChildNodes()) }

func (n *Node) ChildCount() int {
	count := 0
	for range n.ChildNodes() {
		count++
	}
	return count
}
