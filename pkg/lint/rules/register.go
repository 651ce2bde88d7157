package rules

import (
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewLIBlockIndentRule()) // MDI001
}

// RegisterLegacyAliases registers alternate names used by markdownlint
// configuration files.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("list-item-block-indent", "MDI001")
}

// RuleInfos describes every rule in registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))

	for _, rule := range rules {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Aliases:     registry.Aliases(rule.ID()),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		}
		if doc, ok := rule.(lint.Configurable); ok {
			info.Options = doc.Options()
		}
		infos = append(infos, info)
	}

	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
