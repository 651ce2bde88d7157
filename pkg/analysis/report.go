// Package analysis folds a runner.Result into per-file and per-rule tallies
// for the summary renderer.
package analysis

import "github.com/yaklabco/mdindent/pkg/config"

// SortField orders Report.ByFile and Report.ByRule.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"    // path or rule ID
	SortBySeverity SortField = "severity" // most errors, then most warnings
)

func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// Options selects which views Analyze builds and how they are ordered.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool

	SortBy   SortField
	SortDesc bool // for SortByCount

	// RuleFormat shapes RuleAnalysis.Display.
	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes absolute paths relative to it.
	WorkingDir string
}

// DefaultOptions builds every view, busiest first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}

// Report is the output of Analyze.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Errored     []FileError       `json:"errored,omitempty"`
	Totals      Totals            `json:"summary"`
}

// DiagnosticEntry is a diagnostic flattened with its display path.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// FileError is a file that could not be linted.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Counts breaks a number of diagnostics down by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity string) {
	c.Issues++
	switch config.Severity(severity) {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	}
}

func (c Counts) HasIssues() bool { return c.Issues > 0 }

func (c Counts) HasErrors() bool { return c.Errors > 0 }

// Totals sums the whole run.
type Totals struct {
	Counts
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
}

// FileAnalysis tallies one file and lists the rules it tripped.
type FileAnalysis struct {
	Counts
	Path  string   `json:"path"`
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis tallies one rule and lists the files it fired in.
type RuleAnalysis struct {
	Counts
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Display  string   `json:"display"`
	Files    []string `json:"files,omitempty"`
}
