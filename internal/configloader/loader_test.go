package configloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint/rules"
)

// isolated returns options that only consider the project directory.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), `
flavor: gfm
rules:
  li-block-indent:
    severity: error
    options:
      indent: 4
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	require.Len(t, result.LoadedFrom, 1)

	// The rule name is normalized to its ID.
	ruleCfg, ok := result.Config.Rules[rules.LIBlockIndentID]
	require.True(t, ok, "rule config keyed by ID")
	require.NotNil(t, ruleCfg.Severity)
	assert.Equal(t, "error", *ruleCfg.Severity)
	assert.Equal(t, 4, ruleCfg.Options[rules.OptionIndent])
	assert.NotContains(t, result.Config.Rules, "li-block-indent")
}

func TestLoad_ProjectConfigFromParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".mdindent.yaml"), "flavor: gfm\n")

	sub := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, filepath.Join(root, ".mdindent.yaml"), result.Paths.Project)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), "flavor: gfm\nseverity_default: info\n")
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "severity_default: error\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, []string{filepath.Join(dir, ".mdindent.yml"), custom}, result.LoadedFrom)
	assert.Equal(t, custom, result.Paths.Explicit)
}

func TestLoad_LayersMergeAcrossRuleNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), "rules:\n  MDI001:\n    severity: error\n")
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "rules:\n  list-item-block-indent:\n    options:\n      indent: 4\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom
	opts.CLIConfig = &config.Config{
		Rules: map[string]config.RuleConfig{
			"li-block-indent": {Options: map[string]any{rules.OptionStartIndent: 1}},
		},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	require.Len(t, result.Config.Rules, 1)
	rule := result.Config.Rules[rules.LIBlockIndentID]
	require.NotNil(t, rule.Severity)
	assert.Equal(t, "error", *rule.Severity)
	assert.Equal(t, map[string]any{rules.OptionIndent: 4, rules.OptionStartIndent: 1}, rule.Options)

	// The caller's CLI layer keeps its own keys.
	assert.Contains(t, opts.CLIConfig.Rules, "li-block-indent")
}

func TestLoad_CLIOverridesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), "flavor: gfm\njobs: 2\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Flavor:      config.FlavorCommonMark,
		Jobs:        8,
		EnableRules: []string{"MDI001"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, 8, result.Config.Jobs)
	assert.Equal(t, []string{"MDI001"}, result.Config.EnableRules)
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), "flavor: commonmark\n")

	t.Setenv("MDINDENT_FLAVOR", "gfm")
	t.Setenv("MDINDENT_START_INDENT", "2")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 2, result.Config.Rules[rules.LIBlockIndentID].Options[rules.OptionStartIndent])
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad flavor",
			content: "flavor: markdown-extra\n",
			wantErr: "invalid flavor",
		},
		{
			name:    "negative indent",
			content: "rules:\n  MDI001:\n    options:\n      indent: -1\n",
			wantErr: "indent must be >= 0",
		},
		{
			name:    "malformed yaml",
			content: "flavor: [\n",
			wantErr: "parse yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".mdindent.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), "rules:\n  MD999:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "MD999"`)
}

func TestLoad_DuplicateRuleKeysWarn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdindent.yml"), `
rules:
  MDI001:
    severity: info
  li-block-indent:
    severity: error
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
	assert.Equal(t, "error", *result.Config.Rules["MDI001"].Severity)
}

func TestLoad_MarkdownlintHint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"li-block-indent": false}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.False(t, result.MigrationPerformed)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "run 'mdindent migrate'")
}

func TestLoad_MarkdownlintPromptAccepted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "li-block-indent:\n  indent: 4\n")

	var out bytes.Buffer
	opts := isolated(dir)
	opts.NonInteractive = false
	opts.Prompt = &Prompt{In: strings.NewReader("y\n"), Out: &out}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.MigrationPerformed)
	assert.Contains(t, out.String(), "Convert to mdindent format?")
	assert.Equal(t, filepath.Join(dir, DefaultConfigFile), result.Paths.Project)
	assert.Equal(t, 4, result.Config.Rules[rules.LIBlockIndentID].Options[rules.OptionIndent])

	written, err := os.ReadFile(filepath.Join(dir, DefaultConfigFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "# mdindent configuration"))
	assert.Contains(t, string(written), "# Migrated from: .markdownlint.yaml")
}

func TestLoad_MarkdownlintPromptDeclined(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "li-block-indent: true\n")

	opts := isolated(dir)
	opts.NonInteractive = false
	opts.Prompt = &Prompt{In: strings.NewReader("n\n"), Out: &bytes.Buffer{}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.MigrationPerformed)
	_, statErr := os.Stat(filepath.Join(dir, DefaultConfigFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".mdindent.yml"), "flavor: gfm\n")

	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM

	require.NoError(t, WriteConfig(context.Background(), cfg, path, config.DefaultTemplateHeader()))

	loaded, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, loaded.Flavor)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enabled := true
	base := config.NewConfig()
	base.Ignore = []string{"vendor/**"}
	base.Rules["MDI001"] = config.RuleConfig{
		Enabled: &enabled,
		Options: map[string]any{"indent": 2, "start_indent": 0},
	}

	severity := "error"
	override := &config.Config{
		Color: config.ColorNever,
		Rules: map[string]config.RuleConfig{
			"MDI001": {Severity: &severity, Options: map[string]any{"indent": 4}},
		},
	}

	got := MergeAll(base, override)

	assert.Equal(t, config.ColorNever, got.Color)
	assert.Equal(t, config.FlavorCommonMark, got.Flavor)
	assert.Equal(t, []string{"vendor/**"}, got.Ignore)

	rule := got.Rules["MDI001"]
	assert.True(t, *rule.Enabled)
	assert.Equal(t, "error", *rule.Severity)
	assert.Equal(t, map[string]any{"indent": 4, "start_indent": 0}, rule.Options)

	// base is left untouched
	assert.Equal(t, 2, base.Rules["MDI001"].Options["indent"])
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDINDENT_FORMAT", "json")
	t.Setenv("MDINDENT_RULE_FORMAT", "combined")
	t.Setenv("MDINDENT_JOBS", "3")
	t.Setenv("MDINDENT_IGNORE", "vendor/**, ,docs/old/**")
	t.Setenv("MDINDENT_INDENT", "4")
	t.Setenv("MDINDENT_COLOR", "")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, config.RuleFormatCombined, cfg.RuleFormat)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"vendor/**", "docs/old/**"}, cfg.Ignore)
	assert.Equal(t, 4, cfg.Rules["MDI001"].Options["indent"])
	assert.Equal(t, config.ColorAuto, cfg.Color, "empty variables are ignored")
}

func TestLoadFromEnv_InvalidInt(t *testing.T) {
	t.Setenv("MDINDENT_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDINDENT_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(EnvVarNames()))
	assert.Contains(t, vars, "MDINDENT_START_INDENT")
	assert.Equal(t, "MDINDENT_SEVERITY_DEFAULT", GetEnvVarName("severity_default"))
	assert.Empty(t, GetEnvVarName("fix"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	bad := "fatal"
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		wantField  string
		wantValid  bool
		wantWarned bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}, wantValid: true},
		{name: "format", mutate: func(c *config.Config) { c.Format = "table" }, wantField: "format"},
		{name: "rule format", mutate: func(c *config.Config) { c.RuleFormat = "short" }, wantField: "rule_format"},
		{name: "color", mutate: func(c *config.Config) { c.Color = "sometimes" }, wantField: "color"},
		{name: "jobs", mutate: func(c *config.Config) { c.Jobs = -1 }, wantField: "jobs"},
		{name: "ignore glob", mutate: func(c *config.Config) { c.Ignore = []string{"docs/[a"} }, wantField: "ignore[0]"},
		{
			name:      "rule severity",
			mutate:    func(c *config.Config) { c.Rules["MDI001"] = config.RuleConfig{Severity: &bad} },
			wantField: "rules.MDI001.severity",
		},
		{
			name: "start_indent type",
			mutate: func(c *config.Config) {
				c.Rules["li-block-indent"] = config.RuleConfig{Options: map[string]any{"start_indent": "two"}}
			},
			wantField: "rules.li-block-indent.options.start_indent",
		},
		{
			name: "float indent",
			mutate: func(c *config.Config) {
				c.Rules["MDI001"] = config.RuleConfig{Options: map[string]any{"indent": float64(4)}}
			},
			wantValid: true,
		},
		{
			name: "unknown rule",
			mutate: func(c *config.Config) {
				c.Rules["no-such-rule"] = config.RuleConfig{}
			},
			wantValid:  true,
			wantWarned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			assert.Equal(t, tt.wantValid, result.Valid(), result.AllMessages())
			assert.Equal(t, tt.wantWarned, result.HasWarnings())
			if tt.wantField != "" {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{
		Field:    "jobs",
		Message:  "jobs must be >= 0 (0 means auto)",
		FilePath: ".mdindent.yml",
		Line:     3,
	}
	assert.Equal(t, ".mdindent.yml:3: jobs: jobs must be >= 0 (0 means auto)", err.Error())
}

func TestRuleKeyHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MDI001", NormalizeRuleID("li-block-indent"))
	assert.Equal(t, "MDI001", NormalizeRuleID("list-item-block-indent"))
	assert.Empty(t, NormalizeRuleID("MD007"))

	assert.True(t, IsTag("indentation"))
	assert.False(t, IsTag("il"))
	assert.Equal(t, []string{"MDI001"}, GetTagRules("ol"))
	assert.Contains(t, GetAllRuleIDs(), "MDI001")
	assert.Equal(t, []string{"list-item-block-indent"}, GetAliasesForRule("MDI001"))
}
