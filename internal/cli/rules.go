package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdindent/internal/ui/pretty"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Aliases     []string         `json:"aliases,omitempty"`
	Description string           `json:"description"`
	Enabled     bool             `json:"enabled"`
	Severity    string           `json:"severity"`
	Tags        []string         `json:"tags"`
	Options     []ruleOptionInfo `json:"options,omitempty"`
}

type ruleOptionInfo struct {
	Key         string `json:"key"`
	Default     any    `json:"default"`
	Description string `json:"description"`
}

func newRulesCommand(globals *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, aliases,
default severity, tags and options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := rules.RuleInfos(lint.DefaultRegistry)

			switch flags.format {
			case formatJSON:
				return writeRulesJSON(cmd.OutOrStdout(), infos)
			case "text":
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			if !ruleFormat.IsValid() {
				return usageError(fmt.Errorf("invalid rule format %q: must be name, id or combined", flags.ruleFormat))
			}

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
			return writeRulesText(out, styles, ruleFormat, infos)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatCombined),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// writeRulesText prints one block per rule.
func writeRulesText(w io.Writer, styles *pretty.Styles, ruleFormat config.RuleFormat, infos []config.RuleInfo) error {
	var b strings.Builder

	for i, info := range infos {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s  %s  %s\n",
			styles.Bold.Render(ruleFormat.Label(info.ID, info.Name)),
			styles.FormatSeverity(info.Severity),
			info.Description,
		)
		if len(info.Aliases) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", styles.Dim.Render("aliases:"), strings.Join(info.Aliases, ", "))
		}
		if len(info.Tags) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", styles.Dim.Render("tags:"), strings.Join(info.Tags, ", "))
		}
		if !info.Enabled {
			fmt.Fprintf(&b, "  %s\n", styles.Dim.Render("disabled by default"))
		}
		for _, opt := range info.Options {
			fmt.Fprintf(&b, "  %s %s %s\n",
				styles.RuleID.Render(opt.Key),
				styles.Dim.Render(fmt.Sprintf("(default %v)", opt.Default)),
				opt.Description,
			)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// writeRulesJSON outputs rules as a JSON array.
func writeRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		entry := ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Aliases:     info.Aliases,
			Description: info.Description,
			Enabled:     info.Enabled,
			Severity:    string(info.Severity),
			Tags:        info.Tags,
		}
		for _, opt := range info.Options {
			entry.Options = append(entry.Options, ruleOptionInfo{
				Key:         opt.Key,
				Default:     opt.Default,
				Description: opt.Description,
			})
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
