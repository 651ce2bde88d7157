package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdindent/internal/ui/pretty"
)

func TestNewStyles_Plain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, render := range map[string]func(...string) string{
		"error":   styles.Error.Render,
		"warning": styles.Warning.Render,
		"rule":    styles.RuleID.Render,
		"caret":   styles.Caret.Render,
		"header":  styles.TableHeader.Render,
		"dim":     styles.Dim.Render,
		"bold":    styles.Bold.Render,
	} {
		assert.Equal(t, "li-block-indent", render("li-block-indent"), name)
	}
}

func TestNewStyles_Colored(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// lipgloss drops escapes when the process has no terminal, so only check
	// that text survives rendering.
	for _, render := range []func(...string) string{
		styles.Error.Render, styles.Warning.Render, styles.Info.Render,
		styles.FilePath.Render, styles.RuleID.Render, styles.Message.Render,
		styles.Suggestion.Render, styles.SourceLine.Render, styles.Caret.Render,
		styles.SummaryTitle.Render, styles.SummaryValue.Render,
		styles.Success.Render, styles.Failure.Render,
		styles.TableHeader.Render, styles.TableErrorRow.Render, styles.TableWarnRow.Render,
		styles.TableInfoRow.Render, styles.TableSeparator.Render,
		styles.Dim.Render, styles.Bold.Render,
	} {
		assert.Contains(t, render("x"), "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode string
		w    *bytes.Buffer
		want bool
	}{
		{"always", &buf, true},
		{"never", &buf, false},
		{"auto", &buf, false},
		{"", &buf, false},
		{"sometimes", &buf, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.w), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_Never(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
