package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/mdindent/internal/ui/pretty"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/runner"
)

// TextReporter writes one line per diagnostic, optionally grouped under a
// header per file and followed by the offending source line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter. Colour follows opts.Color and
// whether opts.Writer is a terminal.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	issues := 0
	for _, file := range result.Files {
		issues += r.file(file)
	}
	switch {
	case r.opts.ShowSummary && r.opts.Verbose:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return issues, nil
}

// file writes one outcome and returns its diagnostic count.
func (r *TextReporter) file(file runner.FileOutcome) int {
	switch {
	case file.Error != nil:
		r.failure(file.Path, file.Error)
		return 0
	case file.Result == nil || file.Result.FileResult == nil:
		return 0
	}

	res := file.Result
	for _, id := range slices.Sorted(maps.Keys(res.RuleErrors)) {
		r.failure(file.Path, fmt.Errorf("rule %s: %w", id, res.RuleErrors[id]))
	}
	if len(res.Diagnostics) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(res.Diagnostics)))
	}
	for i := range res.Diagnostics {
		r.diagnostic(res, &res.Diagnostics[i])
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(res.Diagnostics)
}

func (r *TextReporter) diagnostic(res *lint.PipelineResult, diag *lint.Diagnostic) {
	var source string
	if r.opts.ShowContext && res.Snapshot != nil {
		source = string(res.Snapshot.LineContent(diag.StartLine))
	}
	fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(diag, r.opts.ShowContext, source, r.opts.RuleFormat))
}

func (r *TextReporter) failure(path string, err error) {
	fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Error.Render("error: "+err.Error()))
}
