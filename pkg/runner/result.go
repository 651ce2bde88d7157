package runner

import (
	"time"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
)

// FileOutcome is what happened to one input. Exactly one of Result and
// Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats totals a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesErrored counts files that could not be read or parsed.
	FilesErrored    int
	FilesWithIssues int

	DiagnosticsTotal int

	// DiagnosticsBySeverity is keyed by severity name. Diagnostics without
	// a severity count as warnings.
	DiagnosticsBySeverity map[string]int
	DiagnosticsByRule     map[string]int

	// RuleErrors counts rule failures across all files.
	RuleErrors int

	Elapsed time.Duration
}

// Result is every outcome of a run, in input order, with totals.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any diagnostic has error severity.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether a file could not be linted or a rule failed.
func (r *Result) HasErrors() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || r.Stats.RuleErrors > 0)
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: map[string]int{},
		DiagnosticsByRule:     map[string]int{},
	}
}

// accumulate appends outcome and folds it into the totals.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	stats := &r.Stats
	if outcome.Error != nil {
		stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil || res.FileResult == nil {
		return
	}

	stats.FilesProcessed++
	stats.RuleErrors += len(res.RuleErrors)
	if len(res.Diagnostics) > 0 {
		stats.FilesWithIssues++
	}
	for _, diag := range res.Diagnostics {
		stats.DiagnosticsTotal++
		stats.DiagnosticsBySeverity[string(cmpSeverity(diag.Severity))]++
		stats.DiagnosticsByRule[diag.RuleID]++
	}
}

func cmpSeverity(s config.Severity) config.Severity {
	if s == "" {
		return config.SeverityWarning
	}
	return s
}
