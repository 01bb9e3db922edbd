package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/logging"
)

// Swapped out in tests.
var (
	newLogger       = logging.NewLogger
	copyToClipboard = clipboard.WriteAll
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// app carries initialized dependencies through the command tree.
type app struct {
	opts    RootOptions
	manager *config.Manager
	logger  *logging.Logger
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qbank-tags",
		Short: "Turn question-bank IDs into flashcard tag searches",
		Long: "qbank-tags converts UWorld, AMBOSS and COMLEX question IDs into a tag\n" +
			"search query for the AnKing deck, and maps card tags back to IDs.\n\n" +
			"Run without arguments in a terminal to open the interactive converter,\n" +
			"or pipe IDs on stdin to print a query.",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isTerminal(cmd.InOrStdin()) {
				return a.runTUI(cmd.Context(), "")
			}
			return a.runConvert(cmd, nil, &convertOptions{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.ConfigPath, "config", "", "config file path (default: ~/.qbank-tags/config.json)")
	pf.StringVar(&a.opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newConvertCmd(a),
		newReverseCmd(a),
		newPatternsCmd(a),
		newHistoryCmd(a),
		newBatchCmd(a),
		newTUICmd(a),
		newShellCmd(a),
	)
	return cmd
}

// execute runs cmd and then releases what setup opened, also when cmd fails.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) error {
	defer a.close()
	return cmd.ExecuteContext(ctx)
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

// setup opens the session log and loads the config file.
func (a *app) setup(stderr io.Writer) error {
	level, err := logging.ParseLevel(a.opts.LogLevel)
	if err != nil {
		return err
	}

	// A logger is always returned; err means it fell back to stderr.
	logger, err := newLogger("cli")
	a.logger = logger
	if err != nil {
		fmt.Fprintf(stderr, "Warning: session log unavailable, logging warnings to stderr: %v\n", err)
		level = max(level, logging.LevelWarn)
	}
	a.logger.SetLevel(level)

	if err := config.Initialize(a.opts.ConfigPath); err != nil {
		a.logger.Errorf("config load failed: %v", err)
		return fmt.Errorf("config initialization failed: %w", err)
	}
	a.manager = config.Global()
	a.logger.Debugf("config loaded from %q", a.opts.ConfigPath)
	return nil
}

// save writes every config section back to disk.
func (a *app) save() error {
	if err := a.manager.SaveAll(); err != nil {
		a.logger.Errorf("config save failed: %v", err)
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
