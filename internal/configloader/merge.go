package configloader

import (
	"maps"

	"github.com/yaklabco/mdindent/pkg/config"
)

// merge layers override on top of base and returns a new config; neither
// input is modified.
//
// Set scalars in override win. Rule entries merge per rule and per option,
// so a project file can change li-block-indent's indent while a user file
// keeps its severity. A non-nil slice in override replaces the base slice.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	result := base.Clone()

	set(&result.Flavor, override.Flavor)
	set(&result.SeverityDefault, override.SeverityDefault)
	set(&result.Format, override.Format)
	set(&result.RuleFormat, override.RuleFormat)
	set(&result.Jobs, override.Jobs)
	set(&result.Color, override.Color)
	set(&result.SummaryOrder, override.SummaryOrder)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	if len(override.Rules) > 0 && result.Rules == nil {
		result.Rules = make(map[string]config.RuleConfig, len(override.Rules))
	}
	for key, rc := range override.Rules {
		result.Rules[key] = mergeRuleConfig(result.Rules[key], rc)
	}

	return result
}

// set overwrites dst with v unless v is the zero value.
func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// mergeRuleConfig layers one rule entry over another.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll layers configs in order; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
