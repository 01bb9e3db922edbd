// Package tui provides the interactive terminal converter.
//
// The TUI code is split into:
// - executor.go: program lifecycle
// - model.go: state and actions
// - update.go: key handling and layout
// - view.go: rendering
// - styles.go: colors and styles
package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/logging"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// Options wires the TUI to its collaborators. Only Overrides is read by the
// conversion itself; the rest are optional.
type Options struct {
	Overrides   qbank.PatternOverrides
	Preferences *config.PreferencesSection
	History     *config.HistorySection
	// Save persists Preferences and History
	Save func() error
	// Copy writes to the clipboard; defaults to the system clipboard
	Copy   func(string) error
	Logger *logging.Logger
	// Input pre-fills the editor
	Input string
}

// Executor runs the converter screen.
type Executor struct {
	opts Options
}

// NewExecutor creates a TUI executor.
func NewExecutor(opts Options) *Executor {
	if opts.Copy == nil && !clipboard.Unsupported {
		opts.Copy = clipboard.WriteAll
	}
	return &Executor{opts: opts}
}

// Run blocks until the user quits or ctx is cancelled.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.opts)
	m.logger.Infof("tui starting with %s %s", m.bank, m.step)

	program := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}
