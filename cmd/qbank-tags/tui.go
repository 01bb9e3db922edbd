package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/executor/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [ids...]",
		Short: "Open the interactive converter",
		Long: "Open the interactive converter. Any IDs given pre-fill the editor.\n\n" +
			"  Ctrl+B  cycle bank        Ctrl+Y  copy query\n" +
			"  Ctrl+T  cycle step        Ctrl+R  history\n" +
			"  Ctrl+L  clear input       Esc     quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *app) runTUI(ctx context.Context, input string) error {
	exec := tui.NewExecutor(tui.Options{
		Overrides:   config.GetCustomPatterns().Overrides(),
		Preferences: config.GetPreferences(),
		History:     config.GetHistory(),
		Save:        a.save,
		Logger:      a.logger,
		Input:       input,
	})
	return exec.Run(ctx)
}
