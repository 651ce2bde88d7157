package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdindent/internal/ui/pretty"
	"github.com/yaklabco/mdindent/pkg/analysis"
	"github.com/yaklabco/mdindent/pkg/config"
)

// Both tables are tableWidth cells wide; only the first column differs.
const (
	tableWidth   = 82
	ruleColWidth = 30
	fileColWidth = 60
	numColWidth  = 7
	warnColWidth = 8
	ellipsis     = "…"
)

// tally is one table row before styling.
type tally struct {
	label                    string
	issues, errors, warnings int
}

// SummaryRenderer prints per-rule and per-file tables followed by a
// totals line.
type SummaryRenderer struct {
	order  config.SummaryOrder
	styles *pretty.Styles
	out    io.Writer
}

func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		order:  opts.SummaryOrder,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, file := range report.Errored {
		fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render("error: "+file.Error))
	}
	if len(report.Errored) > 0 {
		fmt.Fprintln(r.out)
	}

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	rules := func() { r.table("Rules Summary", "Rule", ruleColWidth, ruleTallies(report.ByRule)) }
	files := func() { r.table("Files Summary", "File", fileColWidth, fileTallies(report.ByFile)) }
	first, second := rules, files
	if r.order == config.SummaryOrderFiles {
		first, second = files, rules
	}
	first()
	fmt.Fprintln(r.out)
	second()
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+r.totals(report.Totals))
	return nil
}

func ruleTallies(rules []analysis.RuleAnalysis) []tally {
	rows := make([]tally, 0, len(rules))
	for _, rule := range rules {
		label := runewidth.Truncate(ruleLabel(rule), ruleColWidth-2, ellipsis)
		rows = append(rows, tally{label, rule.Issues, rule.Errors, rule.Warnings})
	}
	return rows
}

func ruleLabel(rule analysis.RuleAnalysis) string {
	if rule.Display != "" {
		return rule.Display
	}
	return rule.RuleID
}

func fileTallies(files []analysis.FileAnalysis) []tally {
	rows := make([]tally, 0, len(files))
	for _, file := range files {
		rows = append(rows, tally{truncatePath(file.Path, fileColWidth-2), file.Issues, file.Errors, file.Warnings})
	}
	return rows
}

func (r *SummaryRenderer) table(title, first string, width int, rows []tally) {
	if len(rows) == 0 {
		return
	}

	sep := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))
	head := r.styles.TableHeader.Render
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, sep)
	fmt.Fprintln(r.out, strings.Join([]string{
		head(runewidth.FillRight(first, width)),
		head(runewidth.FillLeft("Count", numColWidth)),
		head(runewidth.FillLeft("Errors", numColWidth)),
		head(runewidth.FillLeft("Warnings", warnColWidth)),
	}, " "))
	fmt.Fprintln(r.out, sep)

	for _, row := range rows {
		// Pad before styling so escape codes do not count toward width.
		style := r.styles.TableInfoRow
		switch {
		case row.errors > 0:
			style = r.styles.TableErrorRow
		case row.warnings > 0:
			style = r.styles.TableWarnRow
		}
		fmt.Fprintln(r.out, strings.Join([]string{
			style.Render(runewidth.FillRight(row.label, width)),
			runewidth.FillLeft(strconv.Itoa(row.issues), numColWidth),
			runewidth.FillLeft(strconv.Itoa(row.errors), numColWidth),
			runewidth.FillLeft(strconv.Itoa(row.warnings), warnColWidth),
		}, " "))
	}
}

// totals reads "5 issues (3 errors, 2 warnings) in 2 files".
func (r *SummaryRenderer) totals(t analysis.Totals) string {
	line := plural(t.Issues, "issue")

	var parts []string
	if t.Errors > 0 {
		parts = append(parts, r.styles.Error.Render(plural(t.Errors, "error")))
	}
	if t.Warnings > 0 {
		parts = append(parts, r.styles.Warning.Render(plural(t.Warnings, "warning")))
	}
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line + " in " + plural(t.FilesWithIssues, "file")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// truncatePath keeps the tail of path, where the file name is.
func truncatePath(path string, width int) string {
	pathWidth := runewidth.StringWidth(path)
	if pathWidth <= width {
		return path
	}
	return runewidth.TruncateLeft(path, pathWidth-width+runewidth.StringWidth(ellipsis), ellipsis)
}
