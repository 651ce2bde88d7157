// Package config holds mdindent's configuration model. It only describes
// data; discovery and merging live in internal/configloader.
package config

import "math"

// Config is the merged configuration of a run.
type Config struct {
	Flavor          Flavor `yaml:"flavor"`
	SeverityDefault string `yaml:"severity_default"`

	// Rules is keyed by rule ID, name or alias in files, and by canonical
	// ID once loaded.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore holds doublestar globs; "**" spans directories.
	Ignore []string `yaml:"ignore,omitempty"`

	Format     OutputFormat `yaml:"format,omitempty"`
	RuleFormat RuleFormat   `yaml:"rule_format,omitempty"`

	// Jobs is the worker count; 0 means GOMAXPROCS.
	Jobs  int       `yaml:"jobs,omitempty"`
	Color ColorMode `yaml:"color,omitempty"`

	// Set from flags only.
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
	SummaryOrder SummaryOrder `yaml:"-"`
}

// RuleConfig overrides one rule. Nil fields keep the rule's defaults.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Color:           ColorAuto,
		SummaryOrder:    SummaryOrderRules,
	}
}

// IntOption reads an integer option whatever decoded it: YAML gives int,
// JSON float64 and viper int64 or uint64. Fractional floats are rejected.
func IntOption(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
