// Package indent checks that the blocks nested inside Markdown list items and
// blockquotes start at the column their container mandates.
//
// The checker walks a positioned mdast tree in document order, carrying the
// open list and blockquote containers as an immutable scope. For every
// paragraph, list, blockquote and fenced code block it resolves the single
// expected column and compares it with the raw source lines.
package indent

import (
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// Default option values.
const (
	DefaultIndent      = 2
	DefaultStartIndent = 0
)

// Settings configures a check run.
type Settings struct {
	// Indent is the column offset of an unordered sub-list from the start of
	// its parent unordered item.
	Indent int

	// StartIndent is the column of top-level content, 0-based.
	StartIndent int
}

// DefaultSettings returns the settings used when no options are configured.
func DefaultSettings() Settings {
	return Settings{Indent: DefaultIndent, StartIndent: DefaultStartIndent}
}

// Lines gives access to raw source lines by 1-based line number, without
// line terminators. *mdast.FileSnapshot satisfies it.
type Lines interface {
	LineContent(line int) []byte
}

// Checker runs indentation checks with fixed settings.
// A Checker holds no per-document state and is safe for concurrent use.
type Checker struct {
	settings Settings
}

// New creates a Checker.
func New(settings Settings) *Checker {
	return &Checker{settings: settings}
}

// Settings returns the checker's settings.
func (c *Checker) Settings() Settings {
	return c.settings
}

// Check walks root and reports every misaligned line to sink.
func (c *Checker) Check(root *mdast.Node, lines Lines, sink Sink) {
	if root == nil || lines == nil || sink == nil {
		return
	}

	r := &run{settings: c.settings, lines: lines, sink: sink}
	r.visitChildren(root, scope{})
}

// Check runs a checker with settings over root and returns the violations
// in document order.
func Check(root *mdast.Node, lines Lines, settings Settings) []Violation {
	var collector Collector
	New(settings).Check(root, lines, &collector)
	return collector.Violations
}

// run is the state of one Check call.
type run struct {
	settings Settings
	lines    Lines
	sink     Sink
}

// line returns the raw content of a 1-based line.
func (r *run) line(n int) []byte {
	return r.lines.LineContent(n)
}
