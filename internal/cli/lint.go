package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdindent/internal/configloader"
	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
	goldmarkparser "github.com/yaklabco/mdindent/pkg/parser/goldmark"
	"github.com/yaklabco/mdindent/pkg/reporter"
	"github.com/yaklabco/mdindent/pkg/runner"
)

type lintFlags struct {
	format          string
	flavor          string
	severity        string
	ruleFormat      string
	summaryOrder    string
	ignore          []string
	enable          []string
	disable         []string
	jobs            int
	indent          int
	startIndent     int
	maxFileSize     int64
	noContext       bool
	noSummary       bool
	compact         bool
	includeVendored bool
	followSymlinks  bool
	nonInteractive  bool
}

func newLintCommand(globals *globalFlags, flags *lintFlags, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, globals, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check block indentation inside list items and blockquotes.

By default, lints every Markdown file under the current directory, skipping
hidden and vendored directories. Specify paths to lint specific files or
directories, or "-" to read standard input.

Examples:
  mdindent lint                      # Lint current directory
  mdindent lint docs/                # Lint docs directory
  mdindent lint README.md            # Lint single file
  cat README.md | mdindent lint -    # Lint standard input
  mdindent lint --indent 4           # Expect four-column nested lists
  mdindent lint --format sarif       # Output SARIF for code scanning
  mdindent lint --ignore 'docs/**'   # Skip a directory tree`

func runLint(cmd *cobra.Command, args []string, globals *globalFlags, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Standard input carries the document, so it cannot answer prompts.
	readsStdin := slices.Contains(args, fsutil.StdinPath)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   globals.configPath,
		NonInteractive: flags.nonInteractive || readsStdin,
		CLIConfig:      flags.toConfig(cmd.Flags(), globals),
	})
	if err != nil {
		return usageError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	engine := lint.NewEngine(goldmarkparser.New(string(cfg.Flavor)), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		IncludeVendored: flags.includeVendored,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		MaxFileSize:     flags.maxFileSize,
		Stdin:           cmd.InOrStdin(),
		Config:          cfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	logger.Info("lint finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldElapsed, result.Stats.Elapsed,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        string(cfg.Color),
		ShowContext:  !flags.noContext,
		ShowSummary:  !flags.noSummary,
		Verbose:      globals.verbose || globals.debug,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: cfg.SummaryOrder,
		WorkingDir:   workDir,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

// toConfig builds the CLI layer of the configuration. Only flags the user
// set are copied, so that config files and the environment keep their values.
func (f *lintFlags) toConfig(fs *pflag.FlagSet, globals *globalFlags) *config.Config {
	cfg := &config.Config{}

	if fs.Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if fs.Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if fs.Changed("severity") {
		cfg.SeverityDefault = f.severity
	}
	if fs.Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if fs.Changed("summary-order") {
		cfg.SummaryOrder = config.SummaryOrder(f.summaryOrder)
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fs.Changed("color") {
		cfg.Color = config.ColorMode(globals.color)
	}
	if fs.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if fs.Changed("enable") {
		cfg.EnableRules = f.enable
	}
	if fs.Changed("disable") {
		cfg.DisableRules = f.disable
	}

	options := make(map[string]any)
	if fs.Changed("indent") {
		options[rules.OptionIndent] = f.indent
	}
	if fs.Changed("start-indent") {
		options[rules.OptionStartIndent] = f.startIndent
	}
	if len(options) > 0 {
		cfg.Rules = map[string]config.RuleConfig{
			rules.LIBlockIndentID: {Options: options},
		}
	}

	return cfg
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	fs := cmd.Flags()

	fs.StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, sarif, summary")
	fs.StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	fs.StringVar(&flags.severity, "severity", string(config.SeverityWarning),
		"severity for rules without one: error, warning, info")
	fs.StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, id, or combined")
	fs.StringVar(&flags.summaryOrder, "summary-order", string(config.SummaryOrderRules),
		"order of tables in summary output: rules, files")
	fs.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	fs.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore (** matches any depth)")
	fs.StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	fs.StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	fs.IntVar(&flags.indent, "indent", 0, "columns between nested unordered list markers (default 2)")
	fs.IntVar(&flags.startIndent, "start-indent", 0, "column of top-level list content")
	fs.Int64Var(&flags.maxFileSize, "max-file-size", 0, "largest file to lint in bytes (0 = 10 MiB)")
	fs.BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	fs.BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line in text output")
	fs.BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	fs.BoolVar(&flags.includeVendored, "include-vendored", false, "lint files in vendored directories")
	fs.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories while walking")
	fs.BoolVar(&flags.nonInteractive, "non-interactive", false, "never prompt to migrate markdownlint config")
}
