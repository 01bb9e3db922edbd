package main

import (
	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/executor/cli"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Convert IDs line by line at a plain prompt",
		Long: "Start a prompt that converts each line of IDs. Use it where the\n" +
			"full-screen converter cannot run. Type :help at the prompt for commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exec := cli.NewExecutor(
				cli.WithReader(cmd.InOrStdin()),
				cli.WithWriter(cmd.OutOrStdout()),
				cli.WithOverrides(config.GetCustomPatterns().Overrides()),
				cli.WithPreferences(config.GetPreferences()),
				cli.WithHistory(config.GetHistory()),
				cli.WithSave(a.save),
				cli.WithClipboard(copyToClipboard),
				cli.WithLogger(a.logger),
			)
			return exec.Run(cmd.Context())
		},
	}
}
