package lint

import (
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// DiagnosticBuilder assembles a Diagnostic step by step.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts a diagnostic for ruleID at pos in path.
func NewDiagnosticAt(ruleID, path string, pos mdast.SourcePosition, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{diag: Diagnostic{
		RuleID:      ruleID,
		Message:     message,
		FilePath:    path,
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
	}}
}

// NewDiagnostic starts a diagnostic spanning node. A nil node, or one
// without a file, leaves the path and position empty.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	if node == nil {
		return NewDiagnosticAt(ruleID, "", mdast.SourcePosition{}, message)
	}

	path := ""
	if node.File != nil {
		path = node.File.Path
	}
	return NewDiagnosticAt(ruleID, path, node.SourcePosition(), message)
}

// WithRuleName sets the rule name shown next to the ID. Engine fills it in
// when left empty.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithRegistryName sets the rule name registered for the diagnostic's rule
// ID in reg, if any.
func (b *DiagnosticBuilder) WithRegistryName(reg *Registry) *DiagnosticBuilder {
	if reg == nil {
		return b
	}
	if rule, ok := reg.GetByID(b.diag.RuleID); ok {
		b.diag.RuleName = rule.Name()
	}
	return b
}

// WithSeverity sets the severity. Engine overwrites it with the resolved
// severity of the rule.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets the fix hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithContext sets the offending source line.
func (b *DiagnosticBuilder) WithContext(line string) *DiagnosticBuilder {
	b.diag.Context = line
	return b
}

// Build returns the diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
