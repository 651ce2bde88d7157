package mdast

// SourceRange is the half-open byte span [StartOffset, EndOffset) of a node
// in its file's content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

func (r SourceRange) Len() int { return r.EndOffset - r.StartOffset }

func (r SourceRange) IsEmpty() bool { return r.StartOffset >= r.EndOffset }

// Contains reports whether offset falls inside r.
func (r SourceRange) Contains(offset int) bool {
	return r.StartOffset <= offset && offset < r.EndOffset
}

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether p points into a file.
func (p Position) IsValid() bool { return p.Line > 0 && p.Column > 0 }

// SourcePosition is a node's span as lines and columns. EndColumn is one
// past the last byte.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid reports whether every coordinate is set.
func (sp SourcePosition) IsValid() bool {
	return min(sp.StartLine, sp.StartColumn, sp.EndLine, sp.EndColumn) > 0
}

func (sp SourcePosition) IsSingleLine() bool { return sp.StartLine == sp.EndLine }

// SourcePosition resolves n.Range against its file. The zero value is
// returned for nodes without a file or span.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || n.Range.IsEmpty() {
		return SourcePosition{}
	}

	var sp SourcePosition
	sp.StartLine, sp.StartColumn = n.File.LineAt(n.Range.StartOffset)
	sp.EndLine, sp.EndColumn = n.File.LineAt(n.Range.EndOffset - 1)
	sp.EndColumn++
	return sp
}

// StartLine is the 1-based line n starts on, or 0.
func (n *Node) StartLine() int {
	return n.SourcePosition().StartLine
}

// Indent is the number of bytes preceding n on its first line, or -1 when n
// has no position.
func (n *Node) Indent() int {
	if sp := n.SourcePosition(); sp.IsValid() {
		return sp.StartColumn - 1
	}
	return -1
}

// Text is the source bytes of n, or nil when n has no file or its span does
// not fit the content.
func (n *Node) Text() []byte {
	if n.File == nil || n.Range.IsEmpty() || n.Range.StartOffset < 0 || n.Range.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
