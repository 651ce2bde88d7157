package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// FileResult is the outcome of linting one document.
type FileResult struct {
	Snapshot *mdast.FileSnapshot

	// Diagnostics are ordered by position, then rule ID.
	Diagnostics []Diagnostic

	// RuleErrors holds, by rule ID, the rules that failed to run.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics at severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == s {
			n++
		}
	}
	return n
}

// Engine parses documents and applies the enabled rules of a registry.
// It keeps no per-file state and may be shared by workers.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and runs every rule cfg enables. A rule that
// returns an error is recorded in RuleErrors and the remaining rules still
// run. Diagnostics get the rule's resolved severity.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{Snapshot: snapshot, RuleErrors: make(map[string]error)}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			d := &diags[i]
			d.Severity = rr.Severity
			if d.FilePath == "" {
				d.FilePath = path
			}
			if d.RuleName == "" {
				d.RuleName = rr.Rule.Name()
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, compareDiagnostics)
	return result, nil
}

func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.StartColumn, b.StartColumn),
		cmp.Compare(a.RuleID, b.RuleID),
	)
}
