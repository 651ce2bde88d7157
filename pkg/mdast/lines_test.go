package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.Line
	}{
		{"empty", "", []mdast.Line{}},
		{"unterminated", "- a", []mdast.Line{{Start: 0, Break: 3, End: 3}}},
		{
			name:    "LF",
			content: "- a\n  b\n",
			want: []mdast.Line{
				{Start: 0, Break: 3, End: 4},
				{Start: 4, Break: 7, End: 8},
				{Start: 8, Break: 8, End: 8},
			},
		},
		{
			name:    "CRLF",
			content: "- a\r\n  b",
			want: []mdast.Line{
				{Start: 0, Break: 3, End: 5},
				{Start: 5, Break: 8, End: 8},
			},
		},
		{
			name:    "lone CR is content",
			content: "a\rb\n",
			want: []mdast.Line{
				{Start: 0, Break: 3, End: 4},
				{Start: 4, Break: 4, End: 4},
			},
		},
		{
			name:    "blank lines",
			content: "\n\n",
			want: []mdast.Line{
				{Start: 0, Break: 0, End: 1},
				{Start: 1, Break: 1, End: 2},
				{Start: 2, Break: 2, End: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestLine_Len(t *testing.T) {
	t.Parallel()

	lines := mdast.BuildLines([]byte("  - item\r\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, 8, lines[0].Len())
	assert.Equal(t, 0, lines[1].Len())
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("list.md", []byte("* a\n  b\n> c"))

	tests := []struct {
		name   string
		offset int
		line   int
		col    int
	}{
		{"first byte", 0, 1, 1},
		{"line 1 terminator", 3, 1, 4},
		{"line 2 indent", 4, 2, 1},
		{"line 2 content", 6, 2, 3},
		{"line 3 marker", 8, 3, 1},
		{"last byte", 10, 3, 3},
		{"end of content", 11, 3, 4},
		{"negative", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col := snapshot.LineAt(tt.offset)
			assert.Equal(t, tt.line, line, "line")
			assert.Equal(t, tt.col, col, "column")
		})
	}
}

func TestFileSnapshot_LineAtCoversEveryOffset(t *testing.T) {
	t.Parallel()

	content := "1. one\r\n\r\n   two\n"
	snapshot := mdast.NewFileSnapshot("", []byte(content))

	for offset := range len(content) {
		n, col := snapshot.LineAt(offset)
		line, ok := snapshot.Line(n)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, line.Start+col-1, "offset %d", offset)
		assert.Less(t, offset, line.End, "offset %d", offset)
	}
}

func TestFileSnapshot_LineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"- a", 1},
		{"- a\n", 2},
		{"- a\n- b\n- c", 3},
	}

	for _, tt := range tests {
		snapshot := mdast.NewFileSnapshot("", []byte(tt.content))
		assert.Equal(t, tt.want, snapshot.LineCount(), "%q", tt.content)
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("", []byte("- a\r\n\n    b"))

	assert.Equal(t, "- a", string(snapshot.LineContent(1)))
	assert.Empty(t, snapshot.LineContent(2))
	assert.Equal(t, "    b", string(snapshot.LineContent(3)))

	assert.Nil(t, snapshot.LineContent(0))
	assert.Nil(t, snapshot.LineContent(4))
}

func TestFileSnapshot_Line(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("", []byte("a\nb"))

	line, ok := snapshot.Line(2)
	require.True(t, ok)
	assert.Equal(t, mdast.Line{Start: 2, Break: 3, End: 3}, line)

	_, ok = snapshot.Line(3)
	assert.False(t, ok)
}
