package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

// ValidationError is one problem with a configuration value.
type ValidationError struct {
	Field    string // dotted path, e.g. rules.MDI001.severity
	Value    any
	Message  string
	FilePath string
	Line     int
}

// Error formats the error as "file:line: field: message", omitting the
// parts that are unknown.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects errors, which stop loading, and warnings,
// which do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// enumField is a top-level setting restricted to a fixed set of values.
type enumField struct {
	field   string
	label   string
	value   string
	valid   bool
	choices string
}

// Validate checks cfg. Unknown rule keys are warnings; every other
// problem is an error.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for _, f := range []enumField{
		{"flavor", "flavor", string(cfg.Flavor), cfg.Flavor.IsValid(), "commonmark, gfm"},
		{"severity_default", "severity", cfg.SeverityDefault, IsValidSeverity(cfg.SeverityDefault), "error, warning, info"},
		{"format", "format", string(cfg.Format), cfg.Format.IsValid(), "text, json, sarif, summary"},
		{"rule_format", "rule format", string(cfg.RuleFormat), cfg.RuleFormat.IsValid(), "name, id, combined"},
		{"color", "color mode", string(cfg.Color), cfg.Color.IsValid(), "auto, always, never"},
		{"summary_order", "summary order", string(cfg.SummaryOrder), cfg.SummaryOrder.IsValid(), "rules, files"},
	} {
		if f.value != "" && !f.valid {
			result.fail(f.field, f.value, "invalid %s %q; must be one of: %s", f.label, f.value, f.choices)
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for key, rule := range cfg.Rules {
		validateRule(key, rule, result)
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	return result
}

func validateRule(key string, rule config.RuleConfig, result *ValidationResult) {
	field := "rules." + key

	id, _, known := lint.DefaultRegistry.Resolve(key)
	if !known {
		result.warn(field, key, "unknown rule %q; it will be ignored", key)
	}

	if rule.Severity != nil && !IsValidSeverity(*rule.Severity) {
		result.fail(field+".severity", *rule.Severity,
			"invalid severity %q; must be one of: error, warning, info", *rule.Severity)
	}

	if id != rules.LIBlockIndentID {
		return
	}
	// Both column options must be non-negative integers.
	for _, opt := range []string{rules.OptionIndent, rules.OptionStartIndent} {
		raw, set := rule.Options[opt]
		if !set {
			continue
		}
		if n, ok := config.IntOption(raw); !ok {
			result.fail(field+".options."+opt, raw, "%s must be an integer", opt)
		} else if n < 0 {
			result.fail(field+".options."+opt, raw, "%s must be >= 0", opt)
		}
	}
}

// ValidateWithFile is Validate with filePath recorded on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}

// IsValidSeverity reports whether s names a severity.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}
