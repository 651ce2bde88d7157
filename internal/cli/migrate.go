package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdindent/internal/configloader"
	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/fsutil"
)

func newMigrateCommand() *cobra.Command {
	var (
		force  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a markdownlint configuration to mdindent format",
		Long: `Convert the list-item-block-indent settings of a markdownlint
configuration (.markdownlint.json, .jsonc, .yaml or .yml) into an
.mdindent.yml. Without an input file the current directory is searched.
Other markdownlint rules are dropped with a warning. JavaScript
configurations (.markdownlint.cjs, .mjs) cannot be converted.

Examples:
  mdindent migrate                       Find and convert
  mdindent migrate .markdownlint.json    Convert a specific file
  mdindent migrate --output config.yml   Write somewhere else`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewInteractive(cmd.OutOrStdout())

			input, err := migrateInput(logger, args)
			if err != nil {
				return err
			}
			return runMigrate(cmd, logger, input, output, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing output file")
	cmd.Flags().StringVarP(&output, "output", "o", configloader.DefaultConfigFile, "output file path")

	return cmd
}

// migrateInput returns the file named on the command line or the
// markdownlint config found in the working directory.
func migrateInput(logger *log.Logger, args []string) (string, error) {
	if len(args) == 1 {
		if !fsutil.Exists(args[0]) {
			return "", usageError(fmt.Errorf("input file does not exist: %s", args[0]))
		}
		return args[0], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	found := configloader.FindMarkdownlintConfig(cwd)
	if found == "" {
		return "", usageError(errors.New("no markdownlint configuration file found in current directory"))
	}
	logger.Info("found markdownlint config", logging.FieldPath, found)
	return found, nil
}

func runMigrate(cmd *cobra.Command, logger *log.Logger, input, output string, force bool) error {
	if !configloader.CanMigrate(input) {
		return usageError(fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(input)))
	}

	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := checkOverwrite(logger, absOutput, output, force); err != nil {
		return err
	}

	result, err := configloader.ConvertMarkdownlintConfig(input)
	if err != nil {
		return usageError(fmt.Errorf("convert configuration: %w", err))
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(cmd.Context(), result.Config, absOutput,
		configloader.GenerateMigrationHeader(input)); err != nil {
		return err
	}

	logger.Info("migration complete", logging.FieldInput, input, logging.FieldOutput, output)
	if len(result.Warnings) > 0 {
		logger.Warn("review the warnings above before relying on the new configuration")
	}
	logger.Info("the markdownlint configuration can now be deleted")
	return nil
}
