// Package lint runs rules over parsed Markdown and collects diagnostics.
package lint

import (
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// Diagnostic is one finding in one file. Lines and columns are 1-based;
// columns count bytes.
type Diagnostic struct {
	RuleID   string // "MDI001"
	RuleName string // "li-block-indent"

	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion says how to fix the finding, e.g. which column to use.
	Suggestion string

	// Context is the raw source line, without its terminator.
	Context string
}

// SourcePosition returns the span of the diagnostic.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a check run once per file.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Tags() []string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// Apply returns the findings for ctx.File. An error means the rule could
	// not run, for example because its options are invalid; it is never used
	// to report findings. Apply should stop early once ctx is cancelled.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// Configurable is implemented by rules that accept options.
type Configurable interface {
	Options() []config.RuleOption
}
