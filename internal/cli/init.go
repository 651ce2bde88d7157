package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdindent/internal/configloader"
	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

// jsonConfigFile is the project config file written by init --format json.
const jsonConfigFile = ".mdindent.json"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a mdindent configuration file",
		Long: `Create a new .mdindent.yml configuration file in the current directory.
The generated file documents the li-block-indent options and can be edited
to change indentation widths, severities and ignore patterns.

Packs are ready-made settings: ` + strings.Join(rules.PackNames(), ", ") + `.

Examples:
  mdindent init                      Create minimal .mdindent.yml
  mdindent init --full               Document every rule and option
  mdindent init --pack wide          Four-column nesting for MkDocs
  mdindent init --format json        Create .mdindent.json instead
  mdindent init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .mdindent.yml or .mdindent.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	var pack *rules.Pack
	if flags.pack != "" {
		pack = rules.PackByName(flags.pack)
		if pack == nil {
			return usageError(fmt.Errorf("unknown pack %q: must be one of %s",
				flags.pack, strings.Join(rules.PackNames(), ", ")))
		}
		if flags.format != "yaml" {
			return usageError(fmt.Errorf("--pack writes YAML; drop --format %s", flags.format))
		}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultConfigFile
		if flags.format == formatJSON {
			outputPath = jsonConfigFile
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := checkOverwrite(logger, absPath, outputPath, flags.force); err != nil {
		return err
	}

	ctx := cmd.Context()
	if pack != nil {
		cfg := config.NewConfig()
		cfg.Rules = pack.Rules
		header := fmt.Sprintf("%s\n# Pack: %s (%s)\n", config.DefaultTemplateHeader(), pack.Name, pack.Description)
		if err := configloader.WriteConfig(ctx, cfg, absPath, header); err != nil {
			return err
		}
		logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldPack, pack.Name)
		return nil
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteFile(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mdindent rules' to see every rule and its options")

	return nil
}

// checkOverwrite refuses to replace an existing file unless force is set.
func checkOverwrite(logger *log.Logger, absPath, display string, force bool) error {
	if !fsutil.Exists(absPath) {
		return nil
	}
	if !force {
		return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", display))
	}
	logger.Warn("overwriting existing file", logging.FieldPath, display)
	return nil
}
