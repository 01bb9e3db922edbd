package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/logging"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// model is the Bubble Tea state of the converter screen.
type model struct {
	textarea textarea.Model
	viewport viewport.Model

	// Selection
	bank      qbank.Bank
	step      qbank.Step
	overrides qbank.PatternOverrides

	// Last conversion of the current input
	result qbank.Result

	// Collaborators; any may be nil in tests
	prefs    *config.PreferencesSection
	history  *config.HistorySection
	save     func() error
	copyText func(string) error
	logger   *logging.Logger

	// UI state
	showHistory bool
	toast       string
	toastErr    bool

	width  int
	height int
	ready  bool
}

// newModel builds the initial state from the remembered selection.
func newModel(opts Options) model {
	ta := textarea.New()
	ta.Placeholder = "Paste question IDs here (commas, spaces, tabs or newlines)..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)
	ta.Focus()

	m := model{
		textarea:  ta,
		viewport:  viewport.New(80, 10),
		bank:      qbank.UWorld,
		step:      qbank.Step2,
		overrides: opts.Overrides,
		prefs:     opts.Preferences,
		history:   opts.History,
		save:      opts.Save,
		copyText:  opts.Copy,
		logger:    opts.Logger,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.prefs != nil {
		m.bank, m.step = m.prefs.Selection()
	}
	if opts.Input != "" {
		m.textarea.SetValue(opts.Input)
	}
	m.convert()
	return m
}

// convert recomputes the result for the current input and selection.
func (m *model) convert() {
	m.result = qbank.Convert(qbank.Request{
		Text:      m.textarea.Value(),
		Bank:      m.bank,
		Step:      m.step,
		Overrides: m.overrides,
	})
	m.refreshViewport()
}

// cycleBank moves to the next bank, keeping the step when it is valid.
func (m *model) cycleBank() {
	banks := qbank.Banks()
	for i, b := range banks {
		if b == m.bank {
			m.bank = banks[(i+1)%len(banks)]
			break
		}
	}
	if !qbank.IsSupported(m.bank, m.step) {
		m.step = qbank.Step2
	}
	m.rememberSelection()
	m.convert()
}

// cycleStep moves to the next step the current bank supports.
func (m *model) cycleStep() {
	steps := qbank.StepsFor(m.bank)
	if len(steps) == 0 {
		return
	}
	next := steps[0]
	for i, s := range steps {
		if s == m.step {
			next = steps[(i+1)%len(steps)]
			break
		}
	}
	m.step = next
	m.rememberSelection()
	m.convert()
}

func (m *model) rememberSelection() {
	if m.prefs != nil {
		m.prefs.SetSelection(m.bank, m.step)
	}
}

// copyQuery copies the query and records it in history.
func (m *model) copyQuery() {
	if m.result.Query == "" {
		m.setToast("Nothing to copy: "+m.result.Status.String(), true)
		return
	}
	if m.copyText == nil {
		m.setToast("Clipboard unavailable", true)
		return
	}
	if err := m.copyText(m.result.Query); err != nil {
		m.logger.Errorf("clipboard write failed: %v", err)
		m.setToast("Copy failed: "+err.Error(), true)
		return
	}

	if m.history != nil {
		rec := m.history.Add(m.bank, m.step, m.textarea.Value(), m.result.Query, len(m.result.IDs))
		m.logger.Infof("copied query for %d ids (history %s)", rec.IDCount, rec.ID)
	}
	m.persist()
	m.setToast("Search query for "+m.step.Label()+" copied to clipboard", false)
}

// persist saves config, reporting failures in the status line.
func (m *model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		m.logger.Errorf("failed to save config: %v", err)
		m.setToast("Failed to save settings: "+err.Error(), true)
	}
}

// loadHistory restores the input and selection of history entry index.
func (m *model) loadHistory(index int) {
	if m.history == nil {
		return
	}
	records := m.history.List()
	if index < 0 || index >= len(records) {
		return
	}
	rec := records[index]
	m.bank, m.step = rec.Bank, rec.Step
	m.textarea.SetValue(rec.Input)
	m.showHistory = false
	m.rememberSelection()
	m.convert()
}

func (m *model) setToast(msg string, isErr bool) {
	m.toast = msg
	m.toastErr = isErr
}
