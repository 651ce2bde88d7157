package indent

import (
	"fmt"
	"strings"
)

// Violation is one misaligned line.
type Violation struct {
	// Line is the 1-based line number.
	Line int

	// Expected is the 1-based column the line should start at.
	Expected int

	// Actual is the 1-based column the line starts at.
	Actual int

	// Message describes the mismatch, including both columns.
	Message string

	// Context is the offending source line.
	Context string
}

// Sink receives violations as they are found.
type Sink interface {
	Report(v Violation)
}

// Collector is a Sink that keeps every violation in order.
type Collector struct {
	Violations []Violation
}

// Report appends v.
func (c *Collector) Report(v Violation) {
	c.Violations = append(c.Violations, v)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(v Violation)

// Report calls f(v).
func (f SinkFunc) Report(v Violation) {
	f(v)
}

// Descriptions of each kind of mismatch.
const (
	msgListMarkers   = "List item markers not aligned"
	msgListIndent    = "List not aligned with parent item content"
	msgQuoteMarkers  = "Blockquote markers not aligned"
	msgQuoteIndent   = "Blockquote not aligned with container content"
	msgFenceOpen     = "Code fence opening not aligned with container content"
	msgFenceClose    = "Code fence closing not aligned with container content"
	msgContinuation  = "Inconsistent paragraph continuation indentation"
	msgParagraphLine = "Paragraph line not aligned with container content"
)

// report emits a violation for a 1-based line with 0-based columns.
func (r *run) report(line int, what string, expected, actual int) {
	r.sink.Report(Violation{
		Line:     line,
		Expected: expected + 1,
		Actual:   actual + 1,
		Message:  fmt.Sprintf("%s [Expected: %d; Actual: %d]", what, expected+1, actual+1),
		Context:  strings.TrimRight(string(r.line(line)), " \t"),
	})
}
