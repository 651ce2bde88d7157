package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// Prompt is where a migration offer is asked and answered.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Ask writes question and reports whether the reply is yes. An empty reply
// counts as yes.
func (p *Prompt) Ask(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [Y/n] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reply, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || reply == "") {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// terminalPrompt returns a prompt on stdin and stdout, or nil when stdin is
// not a terminal.
func terminalPrompt() *Prompt {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return &Prompt{In: os.Stdin, Out: os.Stdout}
}

// maybeMigrate handles a markdownlint config found where no project config
// exists. Interactively it offers to convert the file; otherwise it only
// warns. It reports whether a project config was written.
func maybeMigrate(ctx context.Context, paths *ConfigPaths, result *LoadResult, opts LoadOptions, workDir string) (bool, error) {
	legacy := paths.Markdownlint
	switch {
	case legacy == "":
		return false, nil
	case paths.Project != "":
		if filepath.Dir(legacy) == filepath.Dir(paths.Project) {
			name := filepath.Base(paths.Project)
			result.warn("both %s and %s exist; using %s", name, legacy, name)
		}
		return false, nil
	case !CanMigrate(legacy):
		result.Warnings = append(result.Warnings, GetMigrationWarning(legacy))
		return false, nil
	}

	prompt := opts.Prompt
	if prompt == nil {
		prompt = terminalPrompt()
	}
	if opts.NonInteractive || prompt == nil {
		result.warn("found %s but no %s; run 'mdindent migrate' to convert", legacy, DefaultConfigFile)
		return false, nil
	}

	accepted, err := prompt.Ask(fmt.Sprintf("Found %s but no %s\nConvert to mdindent format?", legacy, DefaultConfigFile))
	if err != nil || !accepted {
		return false, err
	}

	converted, err := ConvertMarkdownlintConfig(legacy)
	if err != nil {
		return false, fmt.Errorf("convert markdownlint config: %w", err)
	}
	result.Warnings = append(result.Warnings, converted.Warnings...)

	target := filepath.Join(workDir, DefaultConfigFile)
	if err := WriteConfig(ctx, converted.Config, target, GenerateMigrationHeader(legacy)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.warn("migrated %s to %s; you can now delete the old file", legacy, target)
	return true, nil
}
