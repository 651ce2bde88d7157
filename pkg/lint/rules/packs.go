package rules

import (
	"slices"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/indent"
)

// Pack is a named set of rule settings that `mdindent init --pack` writes
// as a starting configuration.
type Pack struct {
	Name        string
	Description string
	Rules       map[string]config.RuleConfig // keyed by rule ID
}

// packDef is the li-block-indent setting a pack differs in.
type packDef struct {
	name, description string
	severity          config.Severity
	indent            int
}

//nolint:gochecknoglobals // read-only
var packDefs = []packDef{
	{"default", "Two-column nested lists, warnings only", config.SeverityWarning, indent.DefaultIndent},
	{"strict", "Two-column nested lists, misalignment is an error", config.SeverityError, indent.DefaultIndent},
	{"wide", "Four-column nested lists for Python-Markdown and MkDocs", config.SeverityWarning, 4},
}

// Packs builds every pack afresh so callers may modify the result.
func Packs() []Pack {
	packs := make([]Pack, 0, len(packDefs))
	for _, def := range packDefs {
		packs = append(packs, def.build())
	}
	return packs
}

// PackByName returns nil for an unknown name.
func PackByName(name string) *Pack {
	i := slices.IndexFunc(packDefs, func(s packDef) bool { return s.name == name })
	if i < 0 {
		return nil
	}
	pack := packDefs[i].build()
	return &pack
}

func PackNames() []string {
	names := make([]string, len(packDefs))
	for i, def := range packDefs {
		names[i] = def.name
	}
	return names
}

func (s packDef) build() Pack {
	enabled := true
	severity := string(s.severity)
	return Pack{
		Name:        s.name,
		Description: s.description,
		Rules: map[string]config.RuleConfig{
			LIBlockIndentID: {
				Enabled:  &enabled,
				Severity: &severity,
				Options: map[string]any{
					OptionIndent:      s.indent,
					OptionStartIndent: indent.DefaultStartIndent,
				},
			},
		},
	}
}
