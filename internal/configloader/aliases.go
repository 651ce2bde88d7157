package configloader

import (
	"slices"

	"github.com/yaklabco/mdindent/pkg/lint"
)

// NormalizeRuleID converts a rule ID, name or alias to its canonical rule ID.
// Returns empty string if the key is not a registered rule.
func NormalizeRuleID(key string) string {
	id, _, ok := lint.DefaultRegistry.Resolve(key)
	if !ok {
		return ""
	}
	return id
}

// IsTag returns true if some registered rule carries the tag.
func IsTag(key string) bool {
	return len(GetTagRules(key)) > 0
}

// GetTagRules returns the IDs of the rules tagged with tag, sorted.
// Returns nil if the tag is not recognized.
func GetTagRules(tag string) []string {
	var ids []string
	for _, rule := range lint.DefaultRegistry.Rules() {
		if slices.Contains(rule.Tags(), tag) {
			ids = append(ids, rule.ID())
		}
	}
	slices.Sort(ids)
	return ids
}

// GetAllRuleIDs returns the IDs of all registered rules.
func GetAllRuleIDs() []string {
	return lint.DefaultRegistry.IDs()
}

// GetAliasesForRule returns all aliases for a given rule ID.
func GetAliasesForRule(ruleID string) []string {
	return lint.DefaultRegistry.Aliases(ruleID)
}
