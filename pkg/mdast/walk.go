package mdast

import (
	"iter"
	"slices"
)

// WalkFunc is called for each node by Walk. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in document order and returns the
// first error fn reports.
func Walk(root *Node, fn WalkFunc) error {
	for n := range Nodes(root) {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// Nodes yields root and its descendants in document order.
func Nodes(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preorder(root, yield)
	}
}

func preorder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !preorder(child, yield) {
			return false
		}
	}
	return true
}

// FindAll returns the nodes under root, root included, that match, in
// document order.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var found []*Node
	for n := range Nodes(root) {
		if match(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindByKind returns the nodes of kind under root in document order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// Ancestors returns the nodes enclosing n below the document, outermost
// first.
func Ancestors(n *Node) []*Node {
	var chain []*Node
	for p := n.Parent; p != nil && p.Kind != NodeDocument; p = p.Parent {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain
}
