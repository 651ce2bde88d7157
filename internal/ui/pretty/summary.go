package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/runner"
)

const summaryDividerWidth = 40

// count renders "1 file" or "3 files".
func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// severityCount pairs a severity with its style and summary labels.
type severityCount struct {
	n     int
	style lipgloss.Style
	noun  string // one-line form
	label string // block form
}

func (s *Styles) severities(stats runner.Stats) []severityCount {
	by := stats.DiagnosticsBySeverity
	return []severityCount{
		{by[string(config.SeverityError)], s.Error, "error", "Errors:"},
		{by[string(config.SeverityWarning)], s.Warning, "warning", "Warnings:"},
		{by[string(config.SeverityInfo)], s.Info, "info", "Info:"},
	}
}

// FormatSummaryOneLine renders e.g.
// "12 issues (8 errors, 4 warnings) in 3 files, 1 file failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var failed string
	if stats.FilesErrored > 0 {
		failed = ", " + s.Failure.Render(count(stats.FilesErrored, "file")+" failed")
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(" ("+count(stats.FilesProcessed, "file")+" checked)") + failed + "\n"
	}

	var parts []string
	for _, sev := range s.severities(stats) {
		switch {
		case sev.n == 0:
		case sev.noun == "info":
			parts = append(parts, sev.style.Render(strconv.Itoa(sev.n)+" info"))
		default:
			parts = append(parts, sev.style.Render(count(sev.n, sev.noun)))
		}
	}

	line := count(stats.DiagnosticsTotal, "issue")
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line + " in " + count(stats.FilesWithIssues, "file") + failed + "\n"
}

// FormatSummary renders a labelled block of run statistics ending with a
// verdict line.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder
	row := func(indent int, label, value string) {
		fmt.Fprintf(&b, "%s%-*s %s\n", strings.Repeat(" ", indent), 20-indent, label, value)
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row(2, "Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row(2, "Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row(2, "Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	b.WriteString("\n")

	row(2, "Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	for _, sev := range s.severities(stats) {
		if sev.n > 0 {
			row(4, sev.label, sev.style.Render(strconv.Itoa(sev.n)))
		}
	}
	if stats.Elapsed > 0 {
		row(2, "Elapsed:", s.Dim.Render(stats.Elapsed.Round(time.Millisecond).String()))
	}
	b.WriteString("\n")

	by := stats.DiagnosticsBySeverity
	switch {
	case by[string(config.SeverityError)] > 0:
		b.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Lint could not read every file"))
	case by[string(config.SeverityWarning)] > 0:
		b.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Lint passed"))
	}
	b.WriteString("\n")

	return b.String()
}
