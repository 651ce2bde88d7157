package indent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/pkg/indent"
	"github.com/yaklabco/mdindent/pkg/mdast"
	"github.com/yaklabco/mdindent/pkg/parser/goldmark"
)

func parseLines(t *testing.T, lines ...string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := goldmark.New(goldmark.FlavorCommonMark).
		Parse(context.Background(), "test.md", []byte(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return snapshot
}

func check(t *testing.T, settings indent.Settings, lines ...string) []indent.Violation {
	t.Helper()

	snapshot := parseLines(t, lines...)
	return indent.Check(snapshot.Root, snapshot, settings)
}

func TestCheck_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			name: "left-aligned paragraphs",
			lines: []string{
				"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
				"Pellentesque vestibulum lectus non tellus congue,",
				"eu ultricies metus ultrices.",
				"",
				"Curabitur ut posuere est, quis convallis orci.",
				"Nam lectus magna, pellentesque at rutrum in, commodo a nisi.",
			},
			want: 0,
		},
		{
			name: "misaligned paragraphs",
			lines: []string{
				"    Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
				"Pellentesque vestibulum lectus non tellus congue,",
				"  eu ultricies metus ultrices.",
				"",
				"Curabitur ut posuere est, quis convallis orci.",
				"   Nam lectus magna, pellentesque at rutrum in, commodo a nisi.",
			},
			want: 2,
		},
		{
			name: "valid nested paragraphs",
			lines: []string{
				"",
				"  * ul item",
				"  * ul item",
				"    continued paragraph",
				"    continued paragraph",
				"    * ul item",
				"      continued paragraph",
				"  * ul item",
				"    continued paragraph",
				"  1. ol item",
				"     continued paragraph",
			},
			want: 0,
		},
		{
			name: "invalid nested paragraphs",
			lines: []string{
				"",
				"  * ul item",
				"  * ul item",
				" continued paragraph",
				" continued paragraph",
				"    * ul item",
				"     continued paragraph",
				"  * ul item",
				"continued paragraph",
				"  1. ol item",
				"       continued paragraph",
			},
			want: 5,
		},
		{
			name: "blockquote inside list item",
			lines: []string{
				"Test",
				"   * **Message:**",
				"",
				"     > a\\",
				"     > b",
				"     > c",
				"",
			},
			want: 0,
		},
		{
			name: "invalid paragraphs with blockquotes",
			lines: []string{
				"",
				">> * ul item",
				">> * ul item",
				"    >> continued paragraph",
				"    >> continued paragraph",
				">> * ul item",
				"      >> continued paragraph",
				">  * ul item",
				"      > continued paragraph",
				"> 1. ol item",
				">    continued paragraph",
				"",
				"* ul item",
				"",
				" > indented blockquote",
			},
			want: 5,
		},
		{
			name: "valid fenced code in list",
			lines: []string{
				"",
				"   * ul item",
				"   * ul item",
				"     continued paragraph",
				"     ```",
				"                  This content is not checked();",
				"             not checked();",
				"            not checked();",
				"             not checked();",
				"     ```",
				"     * ul item",
				"       continued paragraph",
				"   * ul item",
				"     continued paragraph",
				"   1. ol item",
				"      continued paragraph",
			},
			want: 0,
		},
		{
			name: "valid top-level fenced code",
			lines: []string{
				"```",
				"              This content is not checked();",
				"          not checked();",
				"         not checked();",
				"      not checked();",
				"```",
			},
			want: 0,
		},
		{
			name: "invalid fenced code in list",
			lines: []string{
				"",
				"   * ul item",
				"   * ul item",
				"     continued paragraph",
				"      ```",
				"                  This content is not checked();",
				"             not checked();",
				"            not checked();",
				"             not checked();",
				"      ```",
				"     * ul item",
				"       continued paragraph",
				"   * ul item",
				"     continued paragraph",
				"   1. ol item",
				"      continued paragraph",
			},
			want: 2,
		},
		{
			name: "invalid top-level fenced code",
			lines: []string{
				" ```",
				"              This content is not checked();",
				"          not checked();",
				"         not checked();",
				"      not checked();",
				"  ```",
			},
			want: 2,
		},
		{
			name: "inline triple backticks",
			lines: []string{
				"",
				"   * ul item",
				"   * ul item",
				"     continued paragraph",
				"     continued paragraph",
				"     continued paragraph",
				"      ``` testingCode();```",
				"     * ul item",
				"       continued paragraph",
				"   * ul item",
				"     continued paragraph",
				"   1. ol item",
				"      continued paragraph",
			},
			want: 1,
		},
		{
			name: "lazy sublist line is ignored",
			lines: []string{
				"",
				"   1. ol item",
				"   2. ol item",
				"     * test",
			},
			want: 0,
		},
		{
			name: "three space list indent",
			lines: []string{
				"",
				"## Legal Offices Page",
				"",
				"   * Includes body content and a [**Contact Information Chooser**](#TODO) for legal office",
				"     contact information",
			},
			want: 0,
		},
		{
			name: "unclosed fence",
			lines: []string{
				"",
				"   * ul item",
				"   * ul item",
				"     continued paragraph",
				"     ```",
				"                  This content is not checked();",
				"             not checked();",
				"            not checked();",
				"             not checked();",
				"             not checked();",
			},
			want: 0,
		},
		{
			name:  "aligned continuation",
			lines: []string{"  * ul item", "    continued paragraph"},
			want:  0,
		},
		{
			name:  "underindented continuation",
			lines: []string{"  * ul item", " continued paragraph"},
			want:  1,
		},
		{
			name:  "fence content never checked",
			lines: []string{"```", "   content", "```"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, indent.DefaultSettings(), tt.lines...)
			assert.Len(t, got, tt.want, "violations: %+v", got)
		})
	}
}

func TestCheck_ViolationDetails(t *testing.T) {
	t.Parallel()

	got := check(t, indent.DefaultSettings(), "  * ul item", " continued paragraph")
	require.Len(t, got, 1)

	assert.Equal(t, indent.Violation{
		Line:     2,
		Expected: 5,
		Actual:   2,
		Message:  "Paragraph line not aligned with container content [Expected: 5; Actual: 2]",
		Context:  " continued paragraph",
	}, got[0])
}

func TestCheck_FenceDelimitersReportedPerLine(t *testing.T) {
	t.Parallel()

	got := check(t, indent.DefaultSettings(), " ```", "x", "  ```")
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[0].Expected)
	assert.Equal(t, 2, got[0].Actual)
	assert.Contains(t, got[0].Message, "opening")

	assert.Equal(t, 3, got[1].Line)
	assert.Equal(t, 3, got[1].Actual)
	assert.Contains(t, got[1].Message, "closing")
}

func TestCheck_InconsistentContinuationReportedOnce(t *testing.T) {
	t.Parallel()

	got := check(t, indent.DefaultSettings(),
		"- item",
		"  two",
		"   three",
		" four",
	)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 3, got[0].Expected)
	assert.Equal(t, 4, got[0].Actual)
	assert.Contains(t, got[0].Message, "Inconsistent")
}

func TestCheck_MisalignedItems(t *testing.T) {
	t.Parallel()

	// The second item is a sibling because it starts before the first
	// item's content column.
	got := check(t, indent.DefaultSettings(), "- a", " - b")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[0].Expected)
	assert.Equal(t, 2, got[0].Actual)
}

func TestCheck_NestedListIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings indent.Settings
		lines    []string
		want     []int
	}{
		{
			name:     "unordered in unordered uses indent",
			settings: indent.DefaultSettings(),
			lines:    []string{"-   a", "", "    - b"},
			want:     []int{3},
		},
		{
			name:     "unordered in unordered with indent 4",
			settings: indent.Settings{Indent: 4},
			lines:    []string{"-   a", "", "    - b"},
			want:     nil,
		},
		{
			name:     "ordered in unordered uses marker width",
			settings: indent.DefaultSettings(),
			lines:    []string{"- a", "  1. b"},
			want:     nil,
		},
		{
			name:     "unordered in ordered uses marker width",
			settings: indent.DefaultSettings(),
			lines:    []string{"10. a", "    - b"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, tt.settings, tt.lines...)
			var lines []int
			for _, v := range got {
				lines = append(lines, v.Line)
			}
			assert.Equal(t, tt.want, lines, "violations: %+v", got)
		})
	}
}

func TestCheck_StartIndent(t *testing.T) {
	t.Parallel()

	settings := indent.Settings{Indent: 2, StartIndent: 2}

	assert.Empty(t, check(t, settings, "  para", "  graph"))

	got := check(t, settings, "para")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Expected)
	assert.Equal(t, 1, got[0].Actual)
}

func TestCheck_Blockquotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"plain quote", []string{"> a", "> b"}, 0},
		{"nested quotes", []string{"> a", ">", "> > b", "> > c"}, 0},
		{"list in quote", []string{"> - a", ">   b"}, 0},
		{"fence in quote", []string{"> ```", "> x", "> ```"}, 0},
		{"indented quote", []string{" > a"}, 1},
		{"misaligned markers and line", []string{"> a", " > b"}, 2},
		{"quote in item", []string{"- a", "", "  > b"}, 0},
		{"quote outside item content", []string{"-   a", "", "  > b"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, indent.DefaultSettings(), tt.lines...)
			assert.Len(t, got, tt.want, "violations: %+v", got)
		})
	}
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	snapshot := parseLines(t,
		">> * ul item",
		"    >> continued paragraph",
		"",
		" ```",
		"  ```",
	)
	checker := indent.New(indent.DefaultSettings())

	var first, second indent.Collector
	checker.Check(snapshot.Root, snapshot, &first)
	checker.Check(snapshot.Root, snapshot, &second)

	require.NotEmpty(t, first.Violations)
	assert.Equal(t, first.Violations, second.Violations)
}

func TestCheck_NilInputs(t *testing.T) {
	t.Parallel()

	snapshot := parseLines(t, "text")
	checker := indent.New(indent.DefaultSettings())

	assert.NotPanics(t, func() {
		checker.Check(nil, snapshot, &indent.Collector{})
		checker.Check(snapshot.Root, nil, &indent.Collector{})
		checker.Check(snapshot.Root, snapshot, nil)
	})
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()

	snapshot := parseLines(t, "  * a", " b")

	var lines []int
	indent.New(indent.DefaultSettings()).Check(snapshot.Root, snapshot, indent.SinkFunc(func(v indent.Violation) {
		lines = append(lines, v.Line)
	}))

	assert.Equal(t, []int{2}, lines)
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	settings := indent.DefaultSettings()
	assert.Equal(t, 2, settings.Indent)
	assert.Equal(t, 0, settings.StartIndent)
	assert.Equal(t, settings, indent.New(settings).Settings())
}
