package configloader

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

// ulIndentKeys name markdownlint's ul-indent rule, whose indent and
// start_indent options mean the same as li-block-indent's.
//
//nolint:gochecknoglobals // read-only
var ulIndentKeys = []string{"MD007", "ul-indent"}

// MigrationResult is a converted markdownlint configuration.
type MigrationResult struct {
	Config     *config.Config
	Warnings   []string
	SourcePath string
}

func (r *MigrationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ConvertMarkdownlintConfig converts a markdownlint JSON, JSONC or YAML
// file. Only settings for registered rules and tags carry over; everything
// else is named in a warning.
func ConvertMarkdownlintConfig(path string) (*MigrationResult, error) {
	if !CanMigrate(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create an mdindent config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc map[string]any
	if DetectConfigFormat(path) == "json" {
		err = parseJSONC(content, &doc)
	} else {
		err = yaml.Unmarshal(content, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", DetectConfigFormat(path), err)
	}

	result := &MigrationResult{SourcePath: path, Config: config.NewConfig()}
	result.convert(doc)
	return result, nil
}

// convert applies doc to r.Config. Tags apply before rule keys so that a
// rule key overrides the tags of its rule.
func (r *MigrationResult) convert(doc map[string]any) {
	r.applyDirectives(doc)
	ulIndent := popULIndent(doc)

	var ruleKeys, skipped []string
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		switch {
		case NormalizeRuleID(key) != "":
			ruleKeys = append(ruleKeys, key)
		case IsTag(key):
			enabled := truthy(doc[key])
			for _, id := range GetTagRules(key) {
				r.Config.Rules[id] = config.RuleConfig{Enabled: &enabled}
			}
		default:
			skipped = append(skipped, key)
		}
	}

	for _, key := range ruleKeys {
		r.Config.Rules[NormalizeRuleID(key)] = ruleFromValue(doc[key])
	}

	if len(skipped) > 0 {
		r.warn("skipping settings not handled by mdindent: %s", strings.Join(skipped, ", "))
	}

	if len(ulIndent) > 0 {
		rule := r.Config.Rules[rules.LIBlockIndentID]
		if len(rule.Options) == 0 {
			rule.Options = ulIndent
			r.Config.Rules[rules.LIBlockIndentID] = rule
			r.warn("copied ul-indent's indent settings to li-block-indent")
		}
	}
}

// applyDirectives consumes markdownlint's non-rule keys.
func (r *MigrationResult) applyDirectives(doc map[string]any) {
	if def, ok := doc["default"].(bool); ok && !def {
		for _, id := range GetAllRuleIDs() {
			disabled := false
			r.Config.Rules[id] = config.RuleConfig{Enabled: &disabled}
		}
	}
	if extends, ok := doc["extends"].(string); ok {
		r.warn("'extends: %q' is not supported; merge the settings by hand", extends)
	}
	for _, key := range []string{"default", "extends", "$schema"} {
		delete(doc, key)
	}
}

// popULIndent removes the ul-indent entries from doc and returns the
// indentation options they set.
func popULIndent(doc map[string]any) map[string]any {
	options := map[string]any{}
	for _, key := range ulIndentKeys {
		settings, _ := doc[key].(map[string]any)
		delete(doc, key)
		for _, opt := range []string{rules.OptionIndent, rules.OptionStartIndent} {
			if v, ok := settings[opt]; ok {
				options[opt] = v
			}
		}
	}
	return options
}

// ruleFromValue converts a markdownlint rule value: a bool, null, or a map
// of options with an optional "enabled" key.
func ruleFromValue(value any) config.RuleConfig {
	enabled := truthy(value)
	rule := config.RuleConfig{Enabled: &enabled}

	settings, ok := value.(map[string]any)
	if !ok {
		return rule
	}
	for key, v := range settings {
		if key == "enabled" {
			if b, ok := v.(bool); ok {
				rule.Enabled = &b
			}
			continue
		}
		if rule.Options == nil {
			rule.Options = make(map[string]any, len(settings))
		}
		rule.Options[key] = v
	}
	return rule
}

// truthy follows markdownlint: false and null disable, anything else enables.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// GenerateMigrationHeader is the comment block written above a migrated
// configuration.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf("%s\n# Migrated from: %s\n", config.DefaultTemplateHeader(), filepath.Base(sourcePath))
}

// CanMigrate reports whether path can be converted. JavaScript configs cannot.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning explains why path cannot be converted, or returns "".
func GetMigrationWarning(path string) string {
	if CanMigrate(path) {
		return ""
	}
	return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; run 'mdindent init' to create %s",
		filepath.Ext(path), DefaultConfigFile)
}

// DetectConfigFormat classifies a markdownlint config by extension.
func DetectConfigFormat(path string) string {
	lower := strings.ToLower(path)
	switch {
	case IsJSONConfig(lower):
		return "json"
	case IsYAMLConfig(lower):
		return "yaml"
	case IsJavaScriptConfig(lower):
		return "javascript"
	default:
		return "unknown"
	}
}
