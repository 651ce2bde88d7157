package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/runner"
)

// RelativePath converts path to one relative to workDir.
// If workDir is empty or the conversion fails, path is returned unchanged.
func RelativePath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// NormalizeSeverity returns the severity string, defaulting to warning.
func NormalizeSeverity(sev config.Severity) string {
	if sev == "" {
		return string(config.SeverityWarning)
	}
	return string(sev)
}

type fileAcc struct {
	Counts
	rules map[string]struct{}
}

type ruleAcc struct {
	Counts
	name  string
	files map[string]struct{}
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through diagnostics to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	files := make(map[string]*fileAcc)
	rules := make(map[string]*ruleAcc)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errored = append(report.Errored, FileError{Path: displayPath, Error: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		fa := files[displayPath]
		if fa == nil {
			fa = &fileAcc{rules: make(map[string]struct{})}
			files[displayPath] = fa
		}

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			severity := NormalizeSeverity(diag.Severity)

			report.Totals.add(severity)
			fa.add(severity)
			fa.rules[diag.RuleID] = struct{}{}

			ra := rules[diag.RuleID]
			if ra == nil {
				ra = &ruleAcc{name: diag.RuleName, files: make(map[string]struct{})}
				rules[diag.RuleID] = ra
			}
			ra.add(severity)
			ra.files[displayPath] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, newDiagnosticEntry(displayPath, severity, diag))
			}
		}
	}

	if opts.IncludeByFile {
		report.ByFile = buildByFile(files, opts)
	}
	if opts.IncludeByRule {
		report.ByRule = buildByRule(rules, opts)
	}

	return report
}

func newDiagnosticEntry(path, severity string, diag *lint.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    severity,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
	}
}

func buildByFile(files map[string]*fileAcc, opts Options) []FileAnalysis {
	out := make([]FileAnalysis, 0, len(files))
	for path, fa := range files {
		out = append(out, FileAnalysis{Counts: fa.Counts, Path: path, Rules: slices.Sorted(maps.Keys(fa.rules))})
	}
	slices.SortFunc(out, func(left, right FileAnalysis) int {
		return compare(opts, left.Counts, right.Counts, left.Path, right.Path)
	})
	return out
}

func buildByRule(rules map[string]*ruleAcc, opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(rules))
	for id, ra := range rules {
		out = append(out, RuleAnalysis{
			Counts:   ra.Counts,
			RuleID:   id,
			RuleName: ra.name,
			Display:  config.FormatRuleID(opts.RuleFormat, id, ra.name),
			Files:    slices.Sorted(maps.Keys(ra.files)),
		})
	}
	slices.SortFunc(out, func(left, right RuleAnalysis) int {
		return compare(opts, left.Counts, right.Counts, left.RuleID, right.RuleID)
	})
	return out
}

// compare orders two groups by opts.SortBy, falling back to their keys so
// the output never depends on map iteration order.
func compare(opts Options, left, right Counts, leftKey, rightKey string) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.Errors, left.Errors),
			cmp.Compare(right.Warnings, left.Warnings),
			cmp.Compare(right.Issues, left.Issues),
		)
	default:
		result = cmp.Compare(left.Issues, right.Issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}
