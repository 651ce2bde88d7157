package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/mdindent/pkg/analysis"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/runner"
)

// jsonVersion versions the document layout below.
const jsonVersion = "1.0.0"

// JSONOutput is the document written by --format json.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult holds one file. Error is set when the file could not be
// linted at all; RuleErrors lists rules that failed on it.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	RuleErrors  []JSONRuleError  `json:"ruleErrors,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is a lint.Diagnostic with its severity normalized.
type JSONDiagnostic struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
	Context     string `json:"context,omitempty"`
}

// JSONRuleError is a rule that failed on a file.
type JSONRuleError struct {
	RuleID string `json:"ruleId"`
	Error  string `json:"error"`
}

// JSONSummary totals the run.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByRule          map[string]int `json:"byRule"`
	ElapsedMillis   int64          `json:"elapsedMs"`
}

// JSONReporter writes results as a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := newJSONOutput(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return doc.Summary.TotalIssues, nil
}

func newJSONOutput(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}, ByRule: map[string]int{}},
	}
	if result == nil {
		return doc
	}

	doc.Summary.ElapsedMillis = result.Stats.Elapsed.Milliseconds()
	for _, file := range result.Files {
		entry := jsonFile(file)
		doc.Summary.add(&entry)
		doc.Files = append(doc.Files, entry)
	}
	return doc
}

func jsonFile(file runner.FileOutcome) JSONFileResult {
	entry := JSONFileResult{Path: file.Path, Diagnostics: []JSONDiagnostic{}}
	if file.Error != nil {
		entry.Error = file.Error.Error()
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return entry
	}

	for i := range file.Result.Diagnostics {
		entry.Diagnostics = append(entry.Diagnostics, jsonDiagnostic(&file.Result.Diagnostics[i]))
	}
	for _, id := range slices.Sorted(maps.Keys(file.Result.RuleErrors)) {
		entry.RuleErrors = append(entry.RuleErrors, JSONRuleError{RuleID: id, Error: file.Result.RuleErrors[id].Error()})
	}
	return entry
}

func jsonDiagnostic(diag *lint.Diagnostic) JSONDiagnostic {
	return JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    analysis.NormalizeSeverity(diag.Severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Context:     diag.Context,
	}
}

func (s *JSONSummary) add(file *JSONFileResult) {
	s.FilesChecked++
	if file.Error != "" {
		s.FilesErrored++
	}
	if len(file.Diagnostics) > 0 {
		s.FilesWithIssues++
	}
	for _, diag := range file.Diagnostics {
		s.TotalIssues++
		s.BySeverity[diag.Severity]++
		s.ByRule[diag.RuleID]++
	}
}
