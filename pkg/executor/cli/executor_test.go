package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

func runLines(t *testing.T, input string, opts ...ExecutorOption) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]ExecutorOption{WithReader(strings.NewReader(input)), WithWriter(&out)}, opts...)
	require.NoError(t, NewExecutor(opts...).Run(context.Background()))
	return out.String()
}

func TestExecutor_ConvertsEachLine(t *testing.T) {
	out := runLines(t, "21656, 19263\nabc\nexit\n")

	assert.Contains(t, out, "tag:#AK_Step2_v12::#UWorld::Step::21656 OR tag:#AK_Step2_v12::#UWorld::Step::19263\n")
	assert.Contains(t, out, "No UWorld IDs found")
}

func TestExecutor_SwitchesSelection(t *testing.T) {
	prefs := config.NewPreferencesSection()
	saves := 0

	out := runLines(t, "Qz9\n:bank amboss\n:step 1\n:step 3\n",
		WithPreferences(prefs),
		WithSave(func() error { saves++; return nil }),
	)

	// Switching reconverts the last input.
	assert.Contains(t, out, "tag:#AK_Step2_v12::#AMBOSS::Qz9")
	assert.Contains(t, out, "tag:#AK_Step1_v12::#AMBOSS::Qz9")
	assert.Contains(t, out, "Step 3 is not available for AMBOSS")

	bank, step := prefs.Selection()
	assert.Equal(t, qbank.AMBOSS, bank)
	// Step 3 is unsupported for AMBOSS, so the saved step falls back.
	assert.Equal(t, qbank.Step2, step)
	assert.Equal(t, 1, saves)
}

func TestExecutor_Copy(t *testing.T) {
	history := config.NewHistorySection()
	var copied string

	out := runLines(t, ":copy\n42\n:copy\nquit\n",
		WithHistory(history),
		WithClipboard(func(s string) error { copied = s; return nil }),
	)

	assert.Contains(t, out, "Nothing to copy")
	assert.Contains(t, out, "copied to clipboard")
	assert.Equal(t, "tag:#AK_Step2_v12::#UWorld::Step::42", copied)
	require.Len(t, history.List(), 1)
	assert.Equal(t, "42", history.List()[0].Input)
}

func TestExecutor_Overrides(t *testing.T) {
	out := runLines(t, "7\n", WithOverrides(qbank.PatternOverrides{"UWorld_Step2": "x{ID}"}))
	assert.Contains(t, out, "x7\n")
}

func TestExecutor_BadCommands(t *testing.T) {
	out := runLines(t, ":bank Kaplan\n:nope\n:help\n")
	assert.Contains(t, out, "Error: unknown bank")
	assert.Contains(t, out, "Unknown command :nope")
	assert.Contains(t, out, ":step N")
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewExecutor(WithReader(strings.NewReader("1\n")), WithWriter(&out)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
