package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/mdast"
)

func newTestPipeline(rules ...lint.Rule) *lint.Pipeline {
	registry := lint.NewRegistry()
	for _, r := range rules {
		registry.Register(r)
	}
	return lint.NewPipeline(lint.NewEngine(&mockParser{}, registry))
}

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipeline_ProcessFile(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "- a\n   - b\n")
	pipeline := newTestPipeline(newDiagnosticRule(testRuleID, "li-block-indent",
		lint.Diagnostic{Message: "List item markers not aligned", StartLine: 2, StartColumn: 4}))

	result, err := pipeline.ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	require.NotNil(t, result.Info)
	assert.EqualValues(t, 11, result.Info.Size)
	require.Equal(t, 1, result.IssueCount())
	assert.Equal(t, path, result.Diagnostics[0].FilePath)
	assert.Equal(t, "issues found", result.Summary())
}

func TestPipeline_ProcessFile_Stdin(t *testing.T) {
	t.Parallel()

	var seen string
	parser := &mockParser{
		parseFunc: func(_ context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
			seen = string(content)
			snapshot := mdast.NewFileSnapshot(path, content)
			snapshot.Root = mdast.NewDocument()
			return snapshot, nil
		},
	}
	pipeline := lint.NewPipeline(lint.NewEngine(parser, lint.NewRegistry()))

	opts := lint.DefaultPipelineOptions()
	opts.Stdin = strings.NewReader("> quoted\n")

	result, err := pipeline.ProcessFile(context.Background(), "-", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", result.Path)
	assert.Nil(t, result.Info)
	assert.Equal(t, "> quoted\n", seen)
	assert.Equal(t, "ok", result.Summary())
}

func TestPipeline_ProcessFile_Errors(t *testing.T) {
	t.Parallel()

	big := writeMarkdown(t, strings.Repeat("x", 100))

	tests := []struct {
		name string
		path string
		opts lint.PipelineOptions
		want error
	}{
		{
			name: "missing file",
			path: filepath.Join(t.TempDir(), "missing.md"),
			opts: lint.DefaultPipelineOptions(),
			want: lint.ErrFileNotFound,
		},
		{
			name: "too large",
			path: big,
			opts: lint.PipelineOptions{MaxFileSize: 10},
			want: lint.ErrFileTooLarge,
		},
		{
			name: "stdin too large",
			path: "-",
			opts: lint.PipelineOptions{MaxFileSize: 3, Stdin: strings.NewReader("- a\n")},
			want: lint.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestPipeline().ProcessFile(context.Background(), tt.path, nil, tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, lint.IsPipelineError(err))
		})
	}
}

func TestPipeline_ProcessContent_ParseFailure(t *testing.T) {
	t.Parallel()

	parser := &mockParser{
		parseFunc: func(context.Context, string, []byte) (*mdast.FileSnapshot, error) {
			return nil, errors.New("bad input")
		},
	}
	pipeline := lint.NewPipeline(lint.NewEngine(parser, lint.NewRegistry()))

	_, err := pipeline.ProcessContent(context.Background(), "a.md", nil, nil)
	require.ErrorIs(t, err, lint.ErrParseFailure)
}

func TestPipeline_ProcessContent_Binary(t *testing.T) {
	t.Parallel()

	rule := newDiagnosticRule(testRuleID, "li-block-indent")
	_, err := newTestPipeline(rule).ProcessContent(context.Background(), "logo.md", []byte{'P', 'N', 'G', 0x00, 0x1a}, nil)
	require.ErrorIs(t, err, lint.ErrParseFailure)
	assert.Contains(t, err.Error(), "binary")
	assert.Zero(t, rule.calls)
}

func TestPipeline_ProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline().ProcessContent(ctx, "a.md", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, lint.IsPipelineError(err))
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result lint.PipelineResult
		want   string
	}{
		{"not linted", lint.PipelineResult{}, "not linted"},
		{"clean", lint.PipelineResult{FileResult: &lint.FileResult{}}, "ok"},
		{
			"issues",
			lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{{}}}},
			"issues found",
		},
		{
			"rule errors",
			lint.PipelineResult{FileResult: &lint.FileResult{RuleErrors: map[string]error{"MDI001": errors.New("x")}}},
			"rule errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}

func TestIsPipelineError(t *testing.T) {
	t.Parallel()

	assert.False(t, lint.IsPipelineError(nil))
	assert.False(t, lint.IsPipelineError(errors.New("other")))
	assert.True(t, lint.IsPipelineError(lint.ErrParseFailure))
}
