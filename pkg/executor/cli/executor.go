// Package cli provides a line-oriented converter for terminals where the
// full-screen TUI is unavailable.
//
// Each input line is converted with the current bank and step and the
// query is printed. Lines starting with ':' are commands:
//
//	:bank AMBOSS    switch bank
//	:step 1         switch step
//	:copy           copy the last query
//	:help           list commands
//	exit, quit      leave
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/logging"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// Executor runs the prompt loop.
type Executor struct {
	reader *bufio.Reader
	writer io.Writer

	overrides qbank.PatternOverrides
	prefs     *config.PreferencesSection
	history   *config.HistorySection
	save      func() error
	copyText  func(string) error
	logger    *logging.Logger

	bank qbank.Bank
	step qbank.Step
	last qbank.Result
	// input that produced last
	lastInput string
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithReader sets the input source (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithOverrides sets the custom templates used for conversion.
func WithOverrides(overrides qbank.PatternOverrides) ExecutorOption {
	return func(e *Executor) {
		e.overrides = overrides
	}
}

// WithPreferences restores and remembers the bank and step selection.
func WithPreferences(prefs *config.PreferencesSection) ExecutorOption {
	return func(e *Executor) {
		e.prefs = prefs
	}
}

// WithHistory records copied queries.
func WithHistory(history *config.HistorySection) ExecutorOption {
	return func(e *Executor) {
		e.history = history
	}
}

// WithSave is called after each change that should be persisted.
func WithSave(save func() error) ExecutorOption {
	return func(e *Executor) {
		e.save = save
	}
}

// WithClipboard sets the function used by :copy.
func WithClipboard(copyText func(string) error) ExecutorOption {
	return func(e *Executor) {
		e.copyText = copyText
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates a new line executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
		bank:   qbank.UWorld,
		step:   qbank.Step2,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.Discard()
	}
	if e.prefs != nil {
		e.bank, e.step = e.prefs.Selection()
	}
	return e
}

// Run reads lines until EOF, exit, or ctx is cancelled.
func (e *Executor) Run(ctx context.Context) error {
	fmt.Fprintln(e.writer, "qbank-tags")
	fmt.Fprintln(e.writer, "Paste IDs and press Enter. Type :help for commands, 'exit' to quit.")
	fmt.Fprintln(e.writer)

	for {
		select {
		case <-ctx.Done():
			return e.shutdown(ctx.Err())
		default:
		}

		fmt.Fprintf(e.writer, "%s %s> ", e.bank, e.step.Label())
		line, err := e.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		eof := err == io.EOF

		input := strings.TrimSpace(line)
		switch {
		case input == "exit" || input == "quit":
			return e.shutdown(nil)
		case strings.HasPrefix(input, ":"):
			e.handleCommand(input)
		case input != "":
			e.convert(input)
		}

		if eof {
			fmt.Fprintln(e.writer)
			return e.shutdown(nil)
		}
	}
}

func (e *Executor) convert(input string) {
	e.last = qbank.Convert(qbank.Request{Text: input, Bank: e.bank, Step: e.step, Overrides: e.overrides})
	e.lastInput = input
	e.logger.Infof("line convert %s %s: %d ids, %s", e.bank, e.step, len(e.last.IDs), e.last.Status)

	switch e.last.Status {
	case qbank.StatusOK:
		fmt.Fprintln(e.writer, e.last.Query)
	case qbank.StatusUnsupported:
		fmt.Fprintf(e.writer, "%s is not available for %s\n", e.step.Label(), e.bank)
	default:
		fmt.Fprintf(e.writer, "No %s IDs found\n", e.bank)
	}
}

func (e *Executor) handleCommand(input string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(input, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "bank", "b":
		bank, err := qbank.ParseBank(arg)
		if err != nil {
			fmt.Fprintf(e.writer, "Error: %v\n", err)
			return
		}
		e.bank = bank
		if !qbank.IsSupported(e.bank, e.step) {
			e.step = qbank.Step2
		}
		e.selectionChanged()
	case "step", "s":
		step, err := qbank.ParseStep(arg)
		if err != nil {
			fmt.Fprintf(e.writer, "Error: %v\n", err)
			return
		}
		e.step = step
		e.selectionChanged()
	case "copy", "c":
		e.copyLast()
	case "help", "h", "?":
		fmt.Fprintln(e.writer, "  :bank NAME   switch bank (UWorld, AMBOSS, COMLEX)")
		fmt.Fprintln(e.writer, "  :step N      switch step (1, 2, 3)")
		fmt.Fprintln(e.writer, "  :copy        copy the last query to the clipboard")
		fmt.Fprintln(e.writer, "  exit         quit")
	default:
		fmt.Fprintf(e.writer, "Unknown command :%s (try :help)\n", name)
	}
}

// selectionChanged remembers the selection and reconverts the last input.
func (e *Executor) selectionChanged() {
	if e.prefs != nil {
		e.prefs.SetSelection(e.bank, e.step)
	}
	if e.lastInput != "" {
		e.convert(e.lastInput)
	}
}

func (e *Executor) copyLast() {
	if e.last.Query == "" {
		fmt.Fprintln(e.writer, "Nothing to copy")
		return
	}
	if e.copyText == nil {
		fmt.Fprintln(e.writer, "Clipboard unavailable")
		return
	}
	if err := e.copyText(e.last.Query); err != nil {
		e.logger.Errorf("clipboard write failed: %v", err)
		fmt.Fprintf(e.writer, "Copy failed: %v\n", err)
		return
	}
	if e.history != nil {
		e.history.Add(e.bank, e.step, e.lastInput, e.last.Query, len(e.last.IDs))
	}
	e.persist()
	fmt.Fprintf(e.writer, "Search query for %s copied to clipboard\n", e.step.Label())
}

func (e *Executor) persist() {
	if e.save == nil {
		return
	}
	if err := e.save(); err != nil {
		e.logger.Errorf("failed to save config: %v", err)
		fmt.Fprintf(e.writer, "Warning: failed to save settings: %v\n", err)
	}
}

// shutdown saves the selection and returns cause.
func (e *Executor) shutdown(cause error) error {
	if e.prefs != nil {
		e.prefs.SetSelection(e.bank, e.step)
	}
	e.persist()
	return cause
}
