package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdindent/pkg/analysis"
	"github.com/yaklabco/mdindent/pkg/config"
)

// bufWriterSize is the output buffer of the streaming reporters.
const bufWriterSize = 64 * 1024

// Options configures every reporter; each reads the fields it needs.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is auto, always or never.
	Color string

	// ShowContext prints the offending line and a caret under each
	// diagnostic.
	ShowContext bool
	ShowSummary bool
	GroupByFile bool

	// Verbose replaces the one-line text summary with a block that also
	// shows elapsed time.
	Verbose bool

	// Compact minifies JSON and SARIF.
	Compact bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// WorkingDir, when set, shortens paths in summary and SARIF output.
	WorkingDir string

	// ToolVersion is the SARIF driver version.
	ToolVersion string
}

// DefaultOptions writes grouped text with context to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        string(config.ColorAuto),
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
		ToolVersion:  "dev",
	}
}

// analysisOptions is what the summary tables need: both views, busiest
// first.
func (o Options) analysisOptions() analysis.Options {
	return analysis.Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        analysis.SortByCount,
		SortDesc:      true,
		RuleFormat:    o.RuleFormat,
		WorkingDir:    o.WorkingDir,
	}
}
