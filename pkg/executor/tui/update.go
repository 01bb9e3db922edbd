package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows used by everything except the two text boxes.
const chromeHeight = 10

// Init starts the cursor blinking.
func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles keys and resizes. Any edit to the input reconverts.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.recalculateLayout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() != before {
		m.toast = ""
		m.convert()
	}
	return m, cmd
}

// handleKey processes shortcuts. handled is false for keys the textarea
// should receive.
func (m *model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if m.showHistory {
		switch msg.String() {
		case "esc", "ctrl+r":
			m.showHistory = false
			m.refreshViewport()
			return nil, true
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.loadHistory(int(msg.Runes[0] - '1'))
			return nil, true
		}
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.rememberSelection()
		m.persist()
		m.logger.Infof("tui closed with %s %s", m.bank, m.step)
		return tea.Quit, true

	case "ctrl+b":
		m.cycleBank()
		return nil, true

	case "ctrl+t":
		m.cycleStep()
		return nil, true

	case "ctrl+y":
		m.copyQuery()
		return nil, true

	case "ctrl+r":
		m.showHistory = !m.showHistory
		m.refreshViewport()
		return nil, true

	case "ctrl+l":
		m.textarea.Reset()
		m.toast = ""
		m.convert()
		return nil, true
	}

	return nil, false
}

// recalculateLayout sizes the input and output boxes to the window.
func (m *model) recalculateLayout() {
	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}
	m.textarea.SetWidth(innerWidth)

	m.viewport.Width = innerWidth
	m.viewport.Height = m.height - chromeHeight - m.textarea.Height()
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.refreshViewport()
}
