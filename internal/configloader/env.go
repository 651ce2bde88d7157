package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

// EnvPrefix prefixes every environment variable mdindent reads.
const EnvPrefix = "MDINDENT"

// envBinding maps MDINDENT_<KEY> onto the configuration.
type envBinding struct {
	key         string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // read-only
var envBindings = []envBinding{
	{"flavor", "Markdown flavor: commonmark or gfm",
		setString(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"severity_default", "Default severity: error, warning, or info",
		setString(func(c *config.Config, v string) { c.SeverityDefault = v })},
	{"format", "Output format: text, json, sarif, or summary",
		setString(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"rule_format", "Rule identifiers in output: name, id, or combined",
		setString(func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) })},
	{"color", "Styled output: auto, always, or never",
		setString(func(c *config.Config, v string) { c.Color = config.ColorMode(v) })},
	{"jobs", "Number of parallel workers (0 = auto)",
		setInt("jobs", func(c *config.Config, n int) { c.Jobs = n })},
	{"ignore", "Comma-separated list of ignore patterns",
		setString(func(c *config.Config, v string) { c.Ignore = splitList(v) })},
	{rules.OptionIndent, "li-block-indent nesting width for unordered lists",
		setInt(rules.OptionIndent, indentOption(rules.OptionIndent))},
	{rules.OptionStartIndent, "li-block-indent column of top-level content",
		setInt(rules.OptionStartIndent, indentOption(rules.OptionStartIndent))},
}

func setString(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func setInt(key string, set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVarName(key), value)
		}
		set(cfg, n)
		return nil
	}
}

// indentOption sets one li-block-indent option without disturbing the
// rule's other settings.
func indentOption(key string) func(*config.Config, int) {
	return func(cfg *config.Config, n int) {
		if cfg.Rules == nil {
			cfg.Rules = make(map[string]config.RuleConfig)
		}
		rule := cfg.Rules[rules.LIBlockIndentID].Clone()
		if rule.Options == nil {
			rule.Options = make(map[string]any, 1)
		}
		rule.Options[key] = n
		cfg.Rules[rules.LIBlockIndentID] = rule
	}
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// LoadFromEnv applies MDINDENT_* variables to cfg. Empty variables count as
// unset.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, b := range envBindings {
		if err := v.BindEnv(b.key); err != nil {
			return fmt.Errorf("bind %s: %w", envVarName(b.key), err)
		}
	}

	for _, b := range envBindings {
		if !v.IsSet(b.key) {
			continue
		}
		if err := b.apply(cfg, v.GetString(b.key)); err != nil {
			return err
		}
	}
	return nil
}

func envVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// GetEnvVarName returns the variable that sets field, or "".
func GetEnvVarName(field string) string {
	i := slices.IndexFunc(envBindings, func(b envBinding) bool { return b.key == field })
	if i < 0 {
		return ""
	}
	return envVarName(envBindings[i].key)
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for _, b := range envBindings {
		vars[envVarName(b.key)] = b.description
	}
	return vars
}

// EnvVarNames lists the supported variables, sorted.
func EnvVarNames() []string {
	return slices.Sorted(maps.Keys(ListEnvVars()))
}
