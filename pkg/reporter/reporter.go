// Package reporter writes a runner.Result as styled text, JSON, SARIF or
// summary tables.
package reporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdindent/pkg/analysis"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/runner"
)

// Reporter writes a result and returns the number of issues it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an analysis.Report. Formats that aggregate results
// implement Renderer and are wrapped by New.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// Format names an output format. It is the configuration's OutputFormat.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// Formats lists the output formats in help order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}
}

// ParseFormat validates s. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}

// New returns the reporter for opts.Format, filling unset writer and
// version from DefaultOptions.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return &analyzed{renderer: NewSummaryRenderer(opts), opts: opts.analysisOptions()}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// analyzed adapts a Renderer to Reporter by analysing the result first.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}
