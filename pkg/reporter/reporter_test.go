package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	_ "github.com/yaklabco/mdindent/pkg/lint/rules"
	"github.com/yaklabco/mdindent/pkg/reporter"
	"github.com/yaklabco/mdindent/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "removed diff format", input: "diff", wantErr: true},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_AllValid(t *testing.T) {
	for _, format := range reporter.Formats() {
		assert.True(t, format.IsValid(), format.String())
	}
	assert.False(t, reporter.Format("").IsValid())
	assert.False(t, reporter.Format("table").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestNew_ReturnsIssueCount(t *testing.T) {
	for _, format := range reporter.Formats() {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never"})
			require.NoError(t, err)

			count, err := rep.Report(context.Background(), createTestResult())
			require.NoError(t, err)
			assert.Equal(t, 2, count)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_WithDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		ShowContext: true,
		GroupByFile: true,
		RuleFormat:  config.RuleFormatID,
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "list.md (2 issues)")
	assert.Contains(t, output, "list.md:2:2")
	assert.Contains(t, output, "(MDI001)")
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "         continued paragraph\n         ^\n")
	assert.Contains(t, output, "Suggestion: Start the line at column 3")
	assert.Contains(t, output, "2 issues (1 error, 1 warning) in 1 file")
}

func TestTextReporter_VerboseSummary(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		Verbose:     true,
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Total issues:      2")
	assert.Contains(t, output, "Elapsed:           12ms")
	assert.Contains(t, output, "Lint failed with errors")
	assert.NotContains(t, output, "2 issues (1 error")
}

func TestTextReporter_Ungrouped(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, "(2 issues)")
	assert.NotContains(t, output, "continued paragraph", "context is off")
	assert.Equal(t, 2, strings.Count(output, "list.md:"))
}

func TestTextReporter_Errors(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "missing.md", Error: lint.ErrFileNotFound},
			{Path: "broken.md", Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					RuleErrors: map[string]error{"MDI001": errors.New("bad option")},
				},
			}},
		},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "missing.md: error: file not found")
	assert.Contains(t, buf.String(), "broken.md: error: rule MDI001: bad option")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.ShowContext = false
	opts.ShowSummary = false

	rep := reporter.NewTextReporter(opts)

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(li-block-indent)")
	assert.NotContains(t, buf.String(), "MDI001")
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output.Version)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	result := createTestResult()
	result.Files = append(result.Files, runner.FileOutcome{Path: "gone.md", Error: lint.ErrFileNotFound})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 2)
	require.Len(t, output.Files[0].Diagnostics, 2)

	first := output.Files[0].Diagnostics[0]
	assert.Equal(t, "MDI001", first.RuleID)
	assert.Equal(t, "li-block-indent", first.RuleName)
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, 2, first.StartLine)
	assert.Equal(t, 2, first.StartColumn)
	assert.Equal(t, " continued paragraph", first.Context)

	assert.Equal(t, "file not found", output.Files[1].Error)
	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    2,
		FilesWithIssues: 1,
		FilesErrored:    1,
		TotalIssues:     2,
		BySeverity:      map[string]int{"error": 1, "warning": 1},
		ByRule:          map[string]int{"MDI001": 2},
		ElapsedMillis:   12,
	}, output.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = "/repo"
	opts.ToolVersion = "1.2.3"

	result := createTestResult()
	result.Files[0].Path = "/repo/docs/list.md"
	result.Files = append(result.Files, runner.FileOutcome{Path: "/repo/gone.md", Error: lint.ErrFileNotFound})

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)
	run := output.Runs[0]

	assert.Equal(t, "mdindent", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 1, "rules are listed once")
	rule := run.Tool.Driver.Rules[0]
	assert.Equal(t, "MDI001", rule.ID)
	assert.Equal(t, "li-block-indent", rule.Name)
	assert.Equal(t, "List item block indentation", rule.ShortDescription.Text)

	require.Len(t, run.Results, 2)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Equal(t, 0, run.Results[1].RuleIndex)
	loc := run.Results[0].Locations[0].PhysicalLocation
	assert.Equal(t, "docs/list.md", loc.ArtifactLocation.URI)
	require.NotNil(t, loc.Region)
	assert.Equal(t, 2, loc.Region.StartLine)
	assert.Equal(t, " continued paragraph", loc.Region.Snippet.Text)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	require.Len(t, run.Invocations[0].Notifications, 1)
	assert.Equal(t, "gone.md",
		run.Invocations[0].Notifications[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSARIFReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	count, err := reporter.NewSARIFReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "dev", output.Runs[0].Tool.Driver.Version)
	assert.True(t, output.Runs[0].Invocations[0].ExecutionSuccessful)
	assert.Empty(t, output.Runs[0].Results)
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.False(t, opts.Compact)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
	assert.Equal(t, config.SummaryOrderRules, opts.SummaryOrder)
	assert.Equal(t, "dev", opts.ToolVersion)
}

// createTestResult returns one file with an error and a warning from MDI001.
func createTestResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "list.md",
				Result: &lint.PipelineResult{
					FileResult: &lint.FileResult{
						Diagnostics: []lint.Diagnostic{
							{
								RuleID:      "MDI001",
								RuleName:    "li-block-indent",
								Message:     "Continuation paragraph misaligned [Expected: 3; Actual: 2]",
								Severity:    config.SeverityError,
								FilePath:    "list.md",
								StartLine:   2,
								StartColumn: 2,
								EndLine:     2,
								EndColumn:   2,
								Suggestion:  "Start the line at column 3",
								Context:     " continued paragraph",
							},
							{
								RuleID:      "MDI001",
								RuleName:    "li-block-indent",
								Message:     "Nested list misaligned [Expected: 3; Actual: 5]",
								Severity:    config.SeverityWarning,
								FilePath:    "list.md",
								StartLine:   4,
								StartColumn: 5,
								EndLine:     4,
								EndColumn:   5,
							},
						},
					},
				},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       1,
			FilesProcessed:        1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      2,
			DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 1},
			DiagnosticsByRule:     map[string]int{"MDI001": 2},
			Elapsed:               12 * time.Millisecond,
		},
	}
}
