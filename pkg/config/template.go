package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/template"
)

// commentWrapWidth bounds the width of generated comment lines.
const commentWrapWidth = 70

// templateIgnores are the example ignore patterns written by init.
//
//nolint:gochecknoglobals // read-only
var templateIgnores = []string{"vendor/**", "node_modules/**"}

// TemplateOptions selects the template init writes.
type TemplateOptions struct {
	// Full documents every rule with its defaults instead of a short
	// commented example.
	Full bool

	// Format is "yaml" or "json".
	Format string

	// IncludeRules limits the documented rules to these IDs when not empty.
	IncludeRules []string
}

// RuleOption documents one rule option and its default.
type RuleOption struct {
	Key         string
	Default     any
	Description string
}

// RuleInfo is the rule metadata templates and the rules command show.
type RuleInfo struct {
	ID          string
	Name        string
	Aliases     []string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	Options     []RuleOption
}

// RuleInfoProvider lists the registered rules. It lets this package
// describe rules without importing the lint packages.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package.
//
//nolint:gochecknoglobals // set once during init
var DefaultRuleInfoProvider RuleInfoProvider

const minimalTemplate = `{{header}}

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Default severity for all rules: error, warning, or info
# severity_default: warning

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore ("**" matches any number of directories)
# ignore:
#   - "vendor/**"
#   - "**/CHANGELOG.md"

# Rule-specific configuration
# rules:
#   li-block-indent:
#     enabled: true
#     severity: error
#     options:
#       indent: 2
#       start_indent: 0
`

const fullTemplate = `{{header}}
#
# Every rule is listed with its default settings. Edit as needed.

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Default severity for all rules: error, warning, or info
severity_default: warning

# Number of parallel workers (0 = auto based on CPU cores)
jobs: 0

# Output format: text, json, sarif, or summary
format: text

# Rule identifiers in output: name, id, or combined
rule_format: name

# Styled output: auto, always, or never
color: auto

# File patterns to ignore ("**" matches any number of directories)
ignore:
{{- range .Ignore}}
  - "{{.}}"
{{- end}}

# Rule-specific configuration
rules:
{{- range .Rules}}

  # {{.ID}}: {{.Name}}
  # {{wrap .Description}}
{{- with .Tags}}
  # Tags: {{join .}}
{{- end}}
{{- with .Aliases}}
  # Aliases: {{join .}}
{{- end}}
  {{.ID}}:
    enabled: {{.Enabled}}
    severity: {{.Severity}}
{{- with .Options}}
    options:
{{- range .}}
{{- with .Description}}
      # {{wrap .}}
{{- end}}
      {{.Key}}: {{.Default}}
{{- end}}
{{- end}}
{{- end}}
`

//nolint:gochecknoglobals // parsed once
var templates = template.Must(template.New("minimal").Funcs(template.FuncMap{
	"header": DefaultTemplateHeader,
	"wrap":   func(s string) string { return wrapComment(s, commentWrapWidth) },
	"join":   func(items []string) string { return strings.Join(items, ", ") },
}).Parse(minimalTemplate))

func init() {
	template.Must(templates.New("full").Parse(fullTemplate))
}

// GenerateTemplate renders the configuration file written by init.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	name, data := "minimal", any(nil)
	if opts.Full {
		name = "full"
		data = struct {
			Ignore []string
			Rules  []RuleInfo
		}{templateIgnores, selectRules(opts.IncludeRules)}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}

// selectRules returns the provider's rules sorted by ID, limited to include
// when it is not empty.
func selectRules(include []string) []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	rules := DefaultRuleInfoProvider()
	if len(include) > 0 {
		rules = slices.DeleteFunc(rules, func(r RuleInfo) bool { return !slices.Contains(include, r.ID) })
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	return rules
}

// wrapComment breaks text into lines of at most width bytes, continuing
// each line as an indented YAML comment.
func wrapComment(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the template as JSON. JSON has no comments, so
// only values are written; options only with Full.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()

	rules := map[string]any{}
	for _, r := range selectRules(opts.IncludeRules) {
		entry := map[string]any{"enabled": r.Enabled, "severity": string(r.Severity)}
		if opts.Full && len(r.Options) > 0 {
			options := make(map[string]any, len(r.Options))
			for _, opt := range r.Options {
				options[opt.Key] = opt.Default
			}
			entry["options"] = options
		}
		rules[r.ID] = entry
	}

	data, err := json.MarshalIndent(map[string]any{
		"flavor":           defaults.Flavor,
		"severity_default": defaults.SeverityDefault,
		"jobs":             defaults.Jobs,
		"format":           defaults.Format,
		"rule_format":      defaults.RuleFormat,
		"ignore":           templateIgnores,
		"rules":            rules,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// DefaultTemplateHeader is the comment block that opens generated configs.
func DefaultTemplateHeader() string {
	return "# mdindent configuration\n# See: https://github.com/yaklabco/mdindent"
}
