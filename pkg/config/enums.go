package config

import "slices"

// Severity is the level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) IsValid() bool {
	return slices.Contains([]Severity{SeverityError, SeverityWarning, SeverityInfo}, s)
}

// OutputFormat selects the reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

func (f OutputFormat) String() string { return string(f) }

func (f OutputFormat) IsValid() bool {
	return slices.Contains([]OutputFormat{FormatText, FormatJSON, FormatSARIF, FormatSummary}, f)
}

// SummaryOrder picks which summary table comes first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

func (s SummaryOrder) IsValid() bool {
	return s == SummaryOrderRules || s == SummaryOrderFiles
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (c ColorMode) IsValid() bool {
	return slices.Contains([]ColorMode{ColorAuto, ColorAlways, ColorNever}, c)
}

// Flavor is the Markdown dialect used for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}
