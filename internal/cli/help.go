package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdindent/internal/ui/pretty"
)

// helpStyles contains lipgloss styles for command help.
type helpStyles struct {
	heading    lipgloss.Style
	command    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, subcommand: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands. Colour follows the
// --color flag as parsed for the command being described.
type HelpFormatter struct {
	globals *globalFlags
}

// NewHelpFormatter creates a help formatter reading the global flags.
func NewHelpFormatter(globals *globalFlags) *HelpFormatter {
	return &HelpFormatter{globals: globals}
}

const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{join .Aliases ", "}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{subcommand (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimTrailingWhitespace .}}

{{end}}` + usageTemplate

// ApplyToCommand installs the help and usage renderers on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.render(c.OutOrStderr(), usageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.render(c.OutOrStdout(), helpTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(w io.Writer, text string, cmd *cobra.Command) error {
	styles := newHelpStyles(pretty.IsColorEnabled(h.globals.color, w))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":    styles.heading.Render,
		"command":    styles.command.Render,
		"subcommand": styles.subcommand.Render,
		"flags": func(fs *pflag.FlagSet) string {
			return renderFlags(styles, fs)
		},
		"pad":                    runewidth.FillRight,
		"join":                   strings.Join,
		"trimTrailingWhitespace": trimTrailingWhitespace,
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}

	if err := tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

// renderFlags lists the visible flags of fs, one per line, with the names
// padded to a common display width.
func renderFlags(styles helpStyles, fs *pflag.FlagSet) string {
	type row struct {
		names string
		usage string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			names += " " + varname
		}
		if def := flagDefault(f); def != "" {
			usage += " " + styles.dim.Render("(default "+def+")")
		}

		rows = append(rows, row{names: names, usage: usage})
		width = max(width, runewidth.StringWidth(names))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+styles.flag.Render(runewidth.FillRight(r.names, width))+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

// flagDefault returns the default worth showing in help, or "".
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "0", "false", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// trimTrailingWhitespace removes trailing blanks from every line.
func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
