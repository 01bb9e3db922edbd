package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// View renders the whole screen.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("  Question ID → Tag Search"),
		m.buildSelector(),
		inputBoxStyle.Render(m.textarea.View()),
		outputBoxStyle.Render(m.viewport.View()),
		m.buildStatus(),
		tipsStyle.Render("  Ctrl+B bank • Ctrl+T step • Ctrl+Y copy • Ctrl+R history • Ctrl+L clear • Esc quit"),
	)
}

// buildSelector renders the bank and step choices with the active ones marked.
func (m *model) buildSelector() string {
	var b strings.Builder
	b.WriteString("  Bank: ")
	for _, bank := range qbank.Banks() {
		b.WriteString(renderChoice(string(bank), bank == m.bank))
		b.WriteString(" ")
	}
	b.WriteString("   Step: ")
	for _, step := range qbank.StepsFor(m.bank) {
		b.WriteString(renderChoice(step.Label(), step == m.step))
		b.WriteString(" ")
	}
	return b.String()
}

func renderChoice(label string, selected bool) string {
	if selected {
		return selectedStyle.Render(label)
	}
	return unselectedStyle.Render(label)
}

// buildStatus shows the toast if any, else a summary of the conversion.
func (m *model) buildStatus() string {
	if m.toast != "" {
		if m.toastErr {
			return statusBarStyle.Render(errorStyle.Render(m.toast))
		}
		return statusBarStyle.Render(successStyle.Render(m.toast))
	}

	switch m.result.Status {
	case qbank.StatusOK:
		return statusBarStyle.Render(fmt.Sprintf("%d IDs • %s %s", len(m.result.IDs), m.bank, m.step.Label()))
	case qbank.StatusUnsupported:
		return statusBarStyle.Render(errorStyle.Render(fmt.Sprintf("%s is not available for %s", m.step.Label(), m.bank)))
	default:
		return statusBarStyle.Render("No IDs yet")
	}
}

// refreshViewport fills the output box with the query or the history list.
func (m *model) refreshViewport() {
	width := m.viewport.Width
	if m.showHistory {
		m.viewport.SetContent(m.renderHistory(width))
		m.viewport.GotoTop()
		return
	}

	content := m.result.Query
	if content == "" {
		content = tipsStyle.Render("The search query appears here.")
	} else {
		content = queryStyle.Width(width).Render(content)
	}
	m.viewport.SetContent(content)
}

func (m *model) renderHistory(width int) string {
	if m.history == nil {
		return tipsStyle.Render("History is not available.")
	}
	records := m.history.List()
	if len(records) == 0 {
		return tipsStyle.Render("No conversions copied yet.")
	}

	var b strings.Builder
	for i, rec := range records {
		if i == 9 {
			break
		}
		line := fmt.Sprintf("%d. %s  %s %s  %d IDs  %s",
			i+1, rec.Timestamp.Local().Format("Jan 02 15:04"), rec.Bank, rec.Step.Label(), rec.IDCount, truncate(rec.Input, width/2))
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
		b.WriteString("\n")
	}
	b.WriteString(tipsStyle.Render("Press 1-9 to restore an entry, Esc to return."))
	return b.String()
}

// truncate shortens s to max runes on one line.
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if max < 4 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
