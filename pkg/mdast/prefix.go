package mdast

// Grammar limits from CommonMark.
const (
	// maxOrderedDigits is the longest ordered list number.
	maxOrderedDigits = 9

	// maxMarkerSpaces is the most whitespace after a list marker that still
	// counts toward the item's content column.
	maxMarkerSpaces = 4

	// maxBlockIndent is the most indentation allowed before a block marker.
	maxBlockIndent = 3

	// minFenceLength is the shortest code fence.
	minFenceLength = 3

	// minBreakLength is the shortest thematic break.
	minBreakLength = 3
)

// MarkerKind classifies a list item marker.
type MarkerKind uint8

const (
	// MarkerBullet is one of '*', '-' or '+'.
	MarkerBullet MarkerKind = iota + 1

	// MarkerOrdered is one to nine digits followed by '.' or ')'.
	MarkerOrdered
)

// ListMarker describes a list item marker found on a raw line.
type ListMarker struct {
	// Kind is bullet or ordered.
	Kind MarkerKind

	// Offset is the byte offset of the marker in the line.
	Offset int

	// Glyph is the marker length in bytes: 1 for bullets, digits+1 for ordered.
	Glyph int

	// Spaces is the whitespace after the glyph that belongs to the marker.
	Spaces int

	// Delimiter is the bullet character or the ordered delimiter.
	Delimiter byte
}

// Width returns the columns occupied by the marker and its trailing whitespace.
func (m ListMarker) Width() int {
	return m.Glyph + m.Spaces
}

// ContentOffset returns the byte offset where the item's content begins.
func (m ListMarker) ContentOffset() int {
	return m.Offset + m.Width()
}

// IsBulletChar reports whether c is an unordered list marker.
func IsBulletChar(c byte) bool {
	return c == '*' || c == '-' || c == '+'
}

// IsOrderedDelimiter reports whether c terminates an ordered list number.
func IsOrderedDelimiter(c byte) bool {
	return c == '.' || c == ')'
}

// ParseListMarker parses a list item marker starting exactly at offset at.
//
// Whitespace after the marker is counted as written, except that a marker
// followed only by whitespace, or by five or more whitespace bytes, owns a
// single column: its content starts one column after the glyph.
func ParseListMarker(line []byte, at int) (ListMarker, bool) {
	if at < 0 || at >= len(line) {
		return ListMarker{}, false
	}

	marker := ListMarker{Offset: at}

	switch c := line[at]; {
	case IsBulletChar(c):
		marker.Kind = MarkerBullet
		marker.Glyph = 1
		marker.Delimiter = c
	case isDigit(c):
		digits := 0
		for at+digits < len(line) && isDigit(line[at+digits]) {
			digits++
		}
		if digits > maxOrderedDigits || at+digits >= len(line) || !IsOrderedDelimiter(line[at+digits]) {
			return ListMarker{}, false
		}
		marker.Kind = MarkerOrdered
		marker.Glyph = digits + 1
		marker.Delimiter = line[at+digits]
	default:
		return ListMarker{}, false
	}

	rest := line[at+marker.Glyph:]
	if len(rest) == 0 {
		marker.Spaces = 1
		return marker, true
	}
	if !isSpace(rest[0]) {
		return ListMarker{}, false
	}

	spaces := countSpaces(rest, 0)
	switch {
	case spaces == len(rest), spaces > maxMarkerSpaces:
		marker.Spaces = 1
	default:
		marker.Spaces = spaces
	}

	return marker, true
}

// LinePrefix describes the leading indentation and blockquote markers of a
// raw line, scanned without reference to any tree.
type LinePrefix struct {
	// Indent is the number of whitespace bytes before anything else.
	Indent int

	// Quoted is true if a '>' follows the indentation.
	Quoted bool

	// Content is the offset of the first byte that is neither whitespace
	// nor '>'. It equals Indent when the line is not quoted.
	Content int
}

// ScanPrefix scans the indentation and any run of '>' markers of a line.
func ScanPrefix(line []byte) LinePrefix {
	prefix := LinePrefix{Indent: countSpaces(line, 0)}
	prefix.Content = prefix.Indent

	if prefix.Indent < len(line) && line[prefix.Indent] == '>' {
		prefix.Quoted = true
		pos := prefix.Indent
		for pos < len(line) && (line[pos] == '>' || isSpace(line[pos])) {
			pos++
		}
		prefix.Content = pos
	}

	return prefix
}

// StartsWithListMarker reports whether the line, once its indentation and
// '>' markers are stripped, begins with a list item marker.
func StartsWithListMarker(line []byte) bool {
	_, ok := ParseListMarker(line, ScanPrefix(line).Content)
	return ok
}

// Fence describes a code fence delimiter found on a raw line.
type Fence struct {
	// Char is '`' or '~'.
	Char byte

	// Length is the number of fence characters.
	Length int

	// Offset is the byte offset of the first fence character.
	Offset int
}

// ParseFence parses an opening code fence at or after offset at, allowing up
// to three bytes of indentation.
func ParseFence(line []byte, at int) (Fence, bool) {
	pos, ok := SkipBlockIndent(line, at)
	if !ok || pos >= len(line) || (line[pos] != '`' && line[pos] != '~') {
		return Fence{}, false
	}

	fence := Fence{Char: line[pos], Offset: pos}
	fence.Length = countRun(line, pos, fence.Char)
	if fence.Length < minFenceLength {
		return Fence{}, false
	}

	if fence.Char == '`' {
		for _, c := range line[pos+fence.Length:] {
			if c == '`' {
				return Fence{}, false
			}
		}
	}

	return fence, true
}

// ParseClosingFence reports whether the line closes a fence opened by open,
// returning the offset of the first closing fence character.
func ParseClosingFence(line []byte, at int, open Fence) (int, bool) {
	pos, ok := SkipBlockIndent(line, at)
	if !ok || pos >= len(line) || line[pos] != open.Char {
		return 0, false
	}

	run := countRun(line, pos, open.Char)
	if run < open.Length || !IsBlank(line[pos+run:]) {
		return 0, false
	}

	return pos, true
}

// IsThematicBreak reports whether the line is a thematic break from offset at.
func IsThematicBreak(line []byte, at int) bool {
	pos, ok := SkipBlockIndent(line, at)
	if !ok || pos >= len(line) {
		return false
	}

	c := line[pos]
	if c != '*' && c != '-' && c != '_' {
		return false
	}

	count := 0
	for _, b := range line[pos:] {
		switch {
		case b == c:
			count++
		case isSpace(b):
		default:
			return false
		}
	}

	return count >= minBreakLength
}

// IsBlank reports whether b contains only whitespace.
func IsBlank(b []byte) bool {
	return countSpaces(b, 0) == len(b)
}

// SkipBlockIndent skips up to three whitespace bytes from offset at and
// returns the new offset. It returns false if more indentation follows.
func SkipBlockIndent(line []byte, at int) (int, bool) {
	if at > len(line) {
		return at, false
	}
	spaces := countSpaces(line, at)
	if spaces > maxBlockIndent && at+spaces < len(line) {
		return at, false
	}
	return at + spaces, true
}

func countSpaces(b []byte, from int) int {
	n := 0
	for from+n < len(b) && isSpace(b[from+n]) {
		n++
	}
	return n
}

func countRun(b []byte, from int, c byte) int {
	n := 0
	for from+n < len(b) && b[from+n] == c {
		n++
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
