package lint

import (
	"slices"

	"github.com/yaklabco/mdindent/pkg/config"
)

// BaseRule supplies the metadata half of Rule. Rules embed it and implement
// Apply.
type BaseRule struct {
	id, name, desc string
	tags           []string
}

// NewBaseRule describes a rule that is enabled by default at warning
// severity.
func NewBaseRule(id, name, desc string, tags []string) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }

// Tags returns a copy of the rule's tags.
func (r *BaseRule) Tags() []string { return slices.Clone(r.tags) }

func (r *BaseRule) DefaultEnabled() bool { return true }

func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Apply reports nothing; embedding rules override it.
func (r *BaseRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }
