package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of written configuration files.
const yamlIndent = 2

// ToYAML encodes the persisted fields of c. CLI-only fields are skipped.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader encodes c beneath a comment header, separated by a
// blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.TrimRight(header, "\n"))
	buf.WriteString("\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// FromYAML decodes a configuration file. JSON files decode too, as JSON is
// a subset of YAML. Rules is never nil on success.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of c, including CLI-only fields.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			clone.Rules[id] = rc.Clone()
		}
	}

	return &clone
}

// Clone returns a deep copy of rc. Nested option maps and lists are copied
// too.
func (rc RuleConfig) Clone() RuleConfig {
	clone := RuleConfig{}

	if rc.Enabled != nil {
		enabled := *rc.Enabled
		clone.Enabled = &enabled
	}
	if rc.Severity != nil {
		severity := *rc.Severity
		clone.Severity = &severity
	}
	if rc.Options != nil {
		clone.Options = cloneOptions(rc.Options)
	}

	return clone
}

func cloneOptions(options map[string]any) map[string]any {
	out := make(map[string]any, len(options))
	for key, val := range options {
		out[key] = cloneValue(val)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneOptions(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
