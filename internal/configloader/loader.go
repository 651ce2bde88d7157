// Package configloader resolves the effective configuration for a run:
// file discovery, layered merging, MDINDENT_* environment overrides,
// validation and markdownlint migration.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/fsutil"
	"github.com/yaklabco/mdindent/pkg/lint"
)

// configFilePermissions is the mode of written config files.
const configFilePermissions = 0o644

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors project config discovery. Defaults to os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It suppresses migration offers.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool
	IgnoreMarkdownlint  bool

	// NonInteractive turns migration offers into warnings.
	NonInteractive bool

	// Prompt answers migration offers. Defaults to stdin and stdout when
	// stdin is a terminal.
	Prompt *Prompt

	// CLIConfig holds flag values and wins over every other source.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and how it was assembled.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems for the caller to report.
	Warnings []string

	// MigrationPerformed is set when a markdownlint config was converted.
	MigrationPerformed bool
}

func (r *LoadResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// fileLayer is one configuration file in precedence order.
type fileLayer struct {
	source string
	path   string
	skip   bool
}

// Load merges, from lowest to highest precedence: defaults, the system
// file, the user file, the project file, the --config file, MDINDENT_*
// variables and CLI flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	result := &LoadResult{}
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}

	if offerMigration := !opts.IgnoreMarkdownlint && !opts.IgnoreProjectConfig && opts.ExplicitPath == ""; offerMigration {
		migrated, err := maybeMigrate(ctx, paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			if paths, err = DiscoverPaths(ctx, workDir); err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
		}
	}
	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	cfg := config.NewConfig()
	for _, layer := range []fileLayer{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	} {
		if layer.skip || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.source, err)
		}
		cfg = mergeLayer(cfg, layerCfg, result)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfigFile, layer.path, logging.FieldSource, layer.source)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = mergeLayer(cfg, opts.CLIConfig.Clone(), result)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// mergeLayer re-keys layer's rules by canonical ID, since layers may name
// the same rule differently, and merges it over base.
func mergeLayer(base, layer *config.Config, result *LoadResult) *config.Config {
	normalizeRuleKeys(layer, lint.DefaultRegistry, result)
	return merge(base, layer)
}

// loadConfigFile reads and validates one configuration file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	if validation := ValidateWithFile(cfg, path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// WriteConfig atomically writes cfg as YAML beneath header.
func WriteConfig(ctx context.Context, cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := fsutil.WriteFile(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys re-keys cfg.Rules by canonical rule ID. Unknown keys are
// kept for validation to report. When two keys resolve to the same rule the
// one sorting last wins, with a warning.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	claimedBy := make(map[string]string, len(cfg.Rules))

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		id, _, ok := registry.Resolve(key)
		if !ok {
			normalized[key] = cfg.Rules[key]
			continue
		}
		if prev, dup := claimedBy[id]; dup {
			result.warn("duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, key)
		}
		claimedBy[id] = key
		normalized[id] = cfg.Rules[key]
	}

	cfg.Rules = normalized
}
