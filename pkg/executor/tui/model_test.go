package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) write(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

func newTestModel(t *testing.T, opts Options) (*model, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	if opts.Copy == nil {
		opts.Copy = clip.write
	}
	m := newModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &m, clip
}

func typeText(m *model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestModel_LiveConversion(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Equal(t, qbank.StatusNoIDs, m.result.Status)

	typeText(m, "21656, 19263")
	assert.Equal(t, "tag:#AK_Step2_v12::#UWorld::Step::21656 OR tag:#AK_Step2_v12::#UWorld::Step::19263", m.result.Query)
	assert.Contains(t, m.View(), "2 IDs")
}

func TestModel_RestoresPreferences(t *testing.T) {
	prefs := config.NewPreferencesSection()
	prefs.SetSelection(qbank.COMLEX, qbank.Step1)

	m, _ := newTestModel(t, Options{Preferences: prefs, Input: "9"})
	assert.Equal(t, qbank.COMLEX, m.bank)
	assert.Equal(t, qbank.Step1, m.step)
	assert.Equal(t, "tag:#AK_Step1_v12::#UWorld::COMLEX::9", m.result.Query)
}

func TestModel_CycleBankAndStep(t *testing.T) {
	prefs := config.NewPreferencesSection()
	prefs.SetSelection(qbank.UWorld, qbank.Step3)

	m, _ := newTestModel(t, Options{Preferences: prefs, Input: "abc-1"})
	assert.Equal(t, qbank.Step3, m.step)

	// AMBOSS has no Step 3, so the step falls back to Step 2.
	m.Update(key(tea.KeyCtrlB))
	assert.Equal(t, qbank.AMBOSS, m.bank)
	assert.Equal(t, qbank.Step2, m.step)
	assert.Equal(t, "tag:#AK_Step2_v12::#AMBOSS::abc-1", m.result.Query)

	m.Update(key(tea.KeyCtrlT))
	assert.Equal(t, qbank.Step1, m.step)

	bank, step := prefs.Selection()
	assert.Equal(t, qbank.AMBOSS, bank)
	assert.Equal(t, qbank.Step1, step)

	m.Update(key(tea.KeyCtrlB))
	m.Update(key(tea.KeyCtrlB))
	assert.Equal(t, qbank.UWorld, m.bank)
}

func TestModel_CopyRecordsHistory(t *testing.T) {
	history := config.NewHistorySection()
	saves := 0
	m, clip := newTestModel(t, Options{
		History: history,
		Save:    func() error { saves++; return nil },
		Input:   "42",
	})

	m.Update(key(tea.KeyCtrlY))
	assert.Equal(t, "tag:#AK_Step2_v12::#UWorld::Step::42", clip.text)
	assert.Equal(t, 1, saves)
	require.Len(t, history.List(), 1)
	assert.Equal(t, "42", history.List()[0].Input)
	assert.False(t, m.toastErr)
	assert.Contains(t, m.toast, "Step 2")
}

func TestModel_CopyNothing(t *testing.T) {
	m, clip := newTestModel(t, Options{})
	m.Update(key(tea.KeyCtrlY))
	assert.Empty(t, clip.text)
	assert.True(t, m.toastErr)
}

func TestModel_CopyFailure(t *testing.T) {
	history := config.NewHistorySection()
	clip := &fakeClipboard{err: errors.New("no display")}
	m, _ := newTestModel(t, Options{History: history, Copy: clip.write, Input: "1"})

	m.Update(key(tea.KeyCtrlY))
	assert.True(t, m.toastErr)
	assert.Contains(t, m.toast, "no display")
	assert.Empty(t, history.List())
}

func TestModel_HistoryRestore(t *testing.T) {
	history := config.NewHistorySection()
	history.Add(qbank.AMBOSS, qbank.Step1, "Qz9", "q", 1)

	m, _ := newTestModel(t, Options{History: history})
	m.Update(key(tea.KeyCtrlR))
	assert.True(t, m.showHistory)
	assert.Contains(t, m.viewport.View(), "AMBOSS")

	typeText(m, "1")
	assert.False(t, m.showHistory)
	assert.Equal(t, qbank.AMBOSS, m.bank)
	assert.Equal(t, "Qz9", m.textarea.Value())
	assert.Equal(t, "tag:#AK_Step1_v12::#AMBOSS::Qz9", m.result.Query)
}

func TestModel_ClearAndQuit(t *testing.T) {
	saves := 0
	m, _ := newTestModel(t, Options{Input: "1 2", Save: func() error { saves++; return nil }})

	m.Update(key(tea.KeyCtrlL))
	assert.Empty(t, m.textarea.Value())
	assert.Equal(t, qbank.StatusNoIDs, m.result.Status)

	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, saves)
}

func TestModel_UnsupportedStatus(t *testing.T) {
	m, _ := newTestModel(t, Options{Input: "5", Overrides: qbank.PatternOverrides{}})
	m.bank, m.step = qbank.COMLEX, qbank.Step3
	m.convert()
	assert.Equal(t, qbank.StatusUnsupported, m.result.Status)
	assert.Contains(t, m.View(), "not available")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("a\n b", 10))
	assert.Equal(t, "abcdefg...", truncate(strings.Repeat("abcdefghij", 3), 10))
}
