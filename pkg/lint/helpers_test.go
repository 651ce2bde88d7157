package lint_test

import (
	"context"

	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}

	snapshot := mdast.NewFileSnapshot(path, content)
	snapshot.Root = mdast.NewDocument()
	mdast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
}

// diagnosticRule is a test rule that returns fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
	calls int
}

func newDiagnosticRule(id, name string, diags ...lint.Diagnostic) *diagnosticRule {
	return &diagnosticRule{
		BaseRule: lint.NewBaseRule(id, name, "test rule", []string{"test"}),
		diags:    diags,
	}
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]lint.Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out, nil
}
