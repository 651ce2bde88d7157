package mdast

// BlockAttrs carries the kind-specific data of a block node. At most one
// field is set, matching the node's Kind.
type BlockAttrs struct {
	HeadingLevel int
	List         *ListAttrs
	CodeBlock    *CodeBlockAttrs
	Blockquote   *BlockquoteAttrs
}

// ListAttrs describes a list's markers.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+" or "*"
	StartNumber  int
	Delimiter    string // "." or ")"
	Tight        bool
}

// CodeBlockAttrs describes a fenced or indented code block.
type CodeBlockAttrs struct {
	FenceChar   byte // '`' or '~'
	FenceLength int
	Info        string
	Indented    bool

	// Closed reports whether a closing fence was found; Close is the
	// position of its first character.
	Closed bool
	Close  Position
}

// BlockquoteAttrs records where the quote's '>' markers sit, one per line
// that carries one. Lazy continuation lines have no entry.
type BlockquoteAttrs struct {
	Markers []Position
}

func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

func (a *BlockAttrs) WithBlockquote(attrs *BlockquoteAttrs) *BlockAttrs {
	a.Blockquote = attrs
	return a
}
