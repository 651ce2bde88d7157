package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths lists the configuration files found for a run. Empty fields
// mean no file was found.
type ConfigPaths struct {
	System       string // /etc/mdindent/config.yaml
	User         string // $XDG_CONFIG_HOME/mdindent/config.yaml
	Project      string // nearest .mdindent.yml at or above the working directory
	Explicit     string // --config
	Markdownlint string // .markdownlint.* in the working directory
}

// DefaultConfigFile is the project config file written by init and migrate.
const DefaultConfigFile = ".mdindent.yml"

// appName names the system and user config directories.
const appName = "mdindent"

// Lookup tables, in order of preference.
//
//nolint:gochecknoglobals // read-only
var (
	projectConfigFiles = []string{
		DefaultConfigFile,
		".mdindent.yaml",
		"mdindent.yml",
		"mdindent.yaml",
		".mdindent.json",
	}

	dirConfigFiles = []string{"config.yaml", "config.yml", "config.json"}

	markdownlintConfigFiles = []string{
		".markdownlint.json",
		".markdownlint.jsonc",
		".markdownlint.yaml",
		".markdownlint.yml",
		".markdownlint.cjs",
		".markdownlint.mjs",
	}

	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user, project and markdownlint config
// files that apply to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:       firstFile(systemConfigDir(), dirConfigFiles),
		User:         firstFile(userConfigDir(), dirConfigFiles),
		Project:      project,
		Markdownlint: FindMarkdownlintConfig(workDir),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

// userConfigDir follows XDG on every platform; "" when no home is known.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig returns the nearest project config file at or above
// startDir ("" for the working directory). The search stops after a VCS
// root, the home directory or the filesystem root; "" means none was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindMarkdownlintConfig returns the markdownlint config file in dir, or "".
func FindMarkdownlintConfig(dir string) string {
	return firstFile(dir, markdownlintConfigFiles)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// IsJavaScriptConfig reports whether path is a .cjs or .mjs config, which
// cannot be converted.
func IsJavaScriptConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".cjs" || ext == ".mjs"
}

// IsJSONConfig reports whether path is a JSON or JSONC config.
func IsJSONConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".json" || ext == ".jsonc"
}

// IsYAMLConfig reports whether path is a YAML config.
func IsYAMLConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
