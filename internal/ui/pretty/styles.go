// Package pretty renders lint diagnostics and run summaries for terminals
// using lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/mdindent/pkg/config"
)

// ANSI palette indices.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorGrey   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles holds the renderers used for diagnostics, summaries and rule
// listings. With colour disabled every style renders text unchanged.
type Styles struct {
	// Severity labels.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostic parts.
	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary lines.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Summary tables; rows take the colour of their worst severity.
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain, Info: plain,
			FilePath: plain, RuleID: plain, Message: plain,
			Suggestion: plain, SourceLine: plain, Caret: plain,
			SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
			TableHeader: plain, TableErrorRow: plain, TableWarnRow: plain,
			TableInfoRow: plain, TableSeparator: plain,
			Dim: plain, Bold: plain,
		}
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := lipgloss.NewStyle().Bold(true)

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   bold,
		RuleID:     fg(colorGrey),
		Message:    lipgloss.NewStyle(),
		Suggestion: fg(colorGreen).Italic(true),
		SourceLine: fg(colorLight),
		Caret:      fg(colorRed),

		SummaryTitle: bold,
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorLight).Bold(true),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableSeparator: fg(colorGrey),

		Dim:  fg(colorGrey),
		Bold: bold,
	}
}

// IsColorEnabled resolves a --color mode for output written to w. In auto
// mode (and for unknown modes) colour needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch config.ColorMode(mode) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
