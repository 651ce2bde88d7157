// Package mdast provides the block-level Markdown AST used by mdindent.
// It defines an immutable view of a Markdown file:
//   - FileSnapshot: raw content, line table and AST root
//   - Node: block structure with byte ranges into the content
//   - line prefix scanning and the list marker grammar
package mdast

// FileSnapshot is an immutable view of one Markdown document.
type FileSnapshot struct {
	// Path is the display path; "<stdin>" for standard input, empty for
	// in-memory content.
	Path string

	// Content is the document bytes as read.
	Content []byte

	// Lines is the line table of Content.
	Lines []Line

	// Root is the Document node, nil until a parser fills it in.
	Root *Node
}

// NewFileSnapshot wraps content and indexes its lines. Root stays nil.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
