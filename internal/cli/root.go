// Package cli provides the Cobra command tree for mdindent.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose    bool
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdindent command with all subcommands.
// Running the root command without a subcommand lints its arguments.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	lintOpts := &lintFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdindent [paths...]",
		Short: "Check block indentation inside Markdown lists and blockquotes",
		Long: `mdindent checks that paragraphs, code blocks, nested lists and quotes
inside list items and blockquotes start at the column their container
expects, so that every Markdown renderer nests them the same way.

Run without a subcommand, mdindent lints the given paths (default: the
current directory). Use "-" to read from standard input.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !config.ColorMode(globals.color).IsValid() {
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", globals.color))
			}

			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.LevelFromFlags(globals.verbose, globals.debug))
			logging.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, globals, lintOpts, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "enable info logging")
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	addLintFlags(rootCmd, lintOpts)

	rootCmd.AddCommand(newLintCommand(globals, lintOpts, info))
	rootCmd.AddCommand(newRulesCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(globals).ApplyToCommand(rootCmd)

	return rootCmd
}
