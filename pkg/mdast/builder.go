package mdast

// NewNode returns a detached node of kind with no span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent, child.Prev, child.Next = parent, parent.LastChild, nil
	if last := parent.LastChild; last != nil {
		last.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. It does nothing when child
// belongs to another node.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if prev := child.Prev; prev != nil {
		prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if next := child.Next; next != nil {
		next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}
	child.Parent, child.Prev, child.Next = nil, nil, nil
}

// SetRange sets the byte span of n.
func SetRange(n *Node, start, end int) {
	if n != nil {
		n.Range = SourceRange{StartOffset: start, EndOffset: end}
	}
}

// SetFile points node and every descendant at file.
func SetFile(node *Node, file *FileSnapshot) {
	for n := range Nodes(node) {
		n.File = file
	}
}
