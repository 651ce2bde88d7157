package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// RuleContext is what a rule sees for one file.
//
// It carries the run's context.Context as a field because it lives for a
// single Apply call.
type RuleContext struct {
	Ctx context.Context

	// File is the parsed document; Root is File.Root.
	File *mdast.FileSnapshot
	Root *mdast.Node

	// Config is the resolved run configuration.
	Config *config.Config

	// RuleConfig is the entry for the rule being applied, or nil.
	RuleConfig *config.RuleConfig

	// Registry resolves rule names; nil outside an Engine.
	Registry *Registry
}

// NewRuleContext builds a RuleContext. file may be nil.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Cancelled reports whether the run has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value of a rule option.
func (rc *RuleContext) Option(key string) (any, bool) {
	if rc.RuleConfig == nil {
		return nil, false
	}
	v, ok := rc.RuleConfig.Options[key]
	return v, ok
}

// OptionInt returns an integer option, or def when it is unset or not an
// integer.
func (rc *RuleContext) OptionInt(key string, def int) int {
	n, err := rc.IntOption(key, def)
	if err != nil {
		return def
	}
	return n
}

// IntOption returns an integer option, or def when it is unset. A value that
// is not a whole number is an error.
func (rc *RuleContext) IntOption(key string, def int) (int, error) {
	v, ok := rc.Option(key)
	if !ok {
		return def, nil
	}
	n, ok := config.IntOption(v)
	if !ok {
		return def, fmt.Errorf("option %s: want an integer, got %v", key, v)
	}
	return n, nil
}
