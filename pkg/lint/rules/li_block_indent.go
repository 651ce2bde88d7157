package rules

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/indent"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// LIBlockIndentID is the rule's stable identifier.
const LIBlockIndentID = "MDI001"

// Option keys for li-block-indent.
const (
	OptionIndent      = "indent"
	OptionStartIndent = "start_indent"
)

// ErrNegativeOption is returned when an indentation option is below zero.
var ErrNegativeOption = errors.New("option must not be negative")

var _ lint.Configurable = (*LIBlockIndentRule)(nil)

// LIBlockIndentRule checks that blocks nested in list items and blockquotes
// line up with their container's content column.
type LIBlockIndentRule struct {
	lint.BaseRule
}

// NewLIBlockIndentRule creates the li-block-indent rule.
func NewLIBlockIndentRule() *LIBlockIndentRule {
	return &LIBlockIndentRule{
		BaseRule: lint.NewBaseRule(
			LIBlockIndentID,
			"li-block-indent",
			"List item block indentation",
			[]string{"bullet", "ul", "ol", "indentation"},
		),
	}
}

// Options documents the rule's options and their defaults.
func (r *LIBlockIndentRule) Options() []config.RuleOption {
	return []config.RuleOption{
		{
			Key:         OptionIndent,
			Default:     indent.DefaultIndent,
			Description: "Columns between an unordered item's marker and the marker of an unordered list nested in it",
		},
		{
			Key:         OptionStartIndent,
			Default:     indent.DefaultStartIndent,
			Description: "Column, counted from zero, where top-level content starts",
		},
	}
}

// Settings reads the rule's options from ctx.
func (r *LIBlockIndentRule) Settings(ctx *lint.RuleContext) (indent.Settings, error) {
	var settings indent.Settings
	var err error

	if settings.Indent, err = ctx.IntOption(OptionIndent, indent.DefaultIndent); err != nil {
		return settings, fmt.Errorf("%s: %w", r.ID(), err)
	}
	if settings.StartIndent, err = ctx.IntOption(OptionStartIndent, indent.DefaultStartIndent); err != nil {
		return settings, fmt.Errorf("%s: %w", r.ID(), err)
	}

	if settings.Indent < 0 {
		return settings, fmt.Errorf("%s: %s %w (got %d)", r.ID(), OptionIndent, ErrNegativeOption, settings.Indent)
	}
	if settings.StartIndent < 0 {
		return settings, fmt.Errorf("%s: %s %w (got %d)", r.ID(), OptionStartIndent, ErrNegativeOption, settings.StartIndent)
	}

	return settings, nil
}

// Apply reports every misaligned line as a diagnostic at the column the line
// actually starts at.
func (r *LIBlockIndentRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	settings, err := r.Settings(ctx)
	if err != nil {
		return nil, err
	}

	var diags []lint.Diagnostic
	sink := indent.SinkFunc(func(v indent.Violation) {
		pos := mdast.SourcePosition{
			StartLine:   v.Line,
			StartColumn: v.Actual,
			EndLine:     v.Line,
			EndColumn:   v.Actual,
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos, v.Message).
			WithRuleName(r.Name()).
			WithSuggestion(fmt.Sprintf("Start this line at column %d", v.Expected)).
			WithContext(v.Context).
			Build())
	})

	indent.New(settings).Check(ctx.Root, ctx.File, sink)

	if ctx.Cancelled() {
		return diags, ctx.Ctx.Err()
	}
	return diags, nil
}
