package lint

import "github.com/yaklabco/mdindent/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule. Severity comes
// from the rule's own config, then the config default, then the rule.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if s := config.Severity(cfg.SeverityDefault); s.IsValid() {
		rr.Severity = s
	}

	if ruleCfg, ok := lookupRuleConfig(registry, rule, cfg.Rules); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// CLI flags win over config files.
	for _, key := range cfg.EnableRules {
		if refersTo(registry, rule, key) {
			rr.Enabled = true
			break
		}
	}
	for _, key := range cfg.DisableRules {
		if refersTo(registry, rule, key) {
			rr.Enabled = false
			break
		}
	}

	return rr
}

// lookupRuleConfig finds the config entry for rule, keyed by its ID, name or
// any alias.
func lookupRuleConfig(registry *Registry, rule Rule, rules map[string]config.RuleConfig) (config.RuleConfig, bool) {
	if rc, ok := rules[rule.ID()]; ok {
		return rc, true
	}
	for key, rc := range rules {
		if refersTo(registry, rule, key) {
			return rc, true
		}
	}
	return config.RuleConfig{}, false
}

// refersTo reports whether key names rule by ID, name or alias.
func refersTo(registry *Registry, rule Rule, key string) bool {
	if key == rule.ID() || key == rule.Name() {
		return true
	}
	if registry == nil {
		return false
	}
	id, _, ok := registry.Resolve(key)
	return ok && id == rule.ID()
}
