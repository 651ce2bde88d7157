package mdast

import (
	"bytes"
	"slices"
)

// Line locates one physical line in a document.
//
// A document ending in a line terminator has a final empty line, so a
// position just past the last terminator still maps to a line.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// Break is the offset of the line terminator ("\n" or "\r\n"), or the
	// end of the content for an unterminated last line.
	Break int

	// End is the offset just past the terminator.
	End int
}

// Len returns the length of the line without its terminator.
func (l Line) Len() int {
	return l.Break - l.Start
}

// BuildLines indexes the lines of content. LF and CRLF terminators are
// recognised; a lone CR is line content.
func BuildLines(content []byte) []Line {
	if len(content) == 0 {
		return []Line{}
	}

	lines := make([]Line, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}

		nl := start + idx
		brk := nl
		if nl > start && content[nl-1] == '\r' {
			brk--
		}
		lines = append(lines, Line{Start: start, Break: brk, End: nl + 1})
		start = nl + 1
	}

	return append(lines, Line{Start: start, Break: len(content), End: len(content)})
}

// LineCount returns the number of lines in the document.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// Line returns the 1-based line n. ok is false when n is out of range.
func (f *FileSnapshot) Line(n int) (Line, bool) {
	if n < 1 || n > len(f.Lines) {
		return Line{}, false
	}
	return f.Lines[n-1], true
}

// LineAt maps a byte offset to a 1-based line and a 1-based byte column.
// Offsets at or past the end of the content map onto the last line, which
// lets an exclusive end offset be converted. Negative offsets give (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := len(f.Lines) - 1
		return last + 1, offset - f.Lines[last].Start + 1
	}

	idx, _ := slices.BinarySearchFunc(f.Lines, offset, func(l Line, off int) int {
		switch {
		case l.End <= off:
			return -1
		case l.Start > off:
			return 1
		default:
			return 0
		}
	})

	return idx + 1, offset - f.Lines[idx].Start + 1
}

// LineContent returns the bytes of 1-based line n without its terminator,
// or nil when n is out of range. The slice aliases Content.
func (f *FileSnapshot) LineContent(n int) []byte {
	line, ok := f.Line(n)
	if !ok {
		return nil
	}
	return f.Content[line.Start:line.Break]
}
