// Package rules provides the built-in lint rules for mdindent.
//
//   - MDI001: li-block-indent - Blocks nested in list items and blockquotes
//     must start at the column their container mandates. Also known as
//     list-item-block-indent.
//
// Rules register themselves with lint.DefaultRegistry at init time and
// publish their metadata to config.DefaultRuleInfoProvider so that
// configuration templates can document them.
package rules
