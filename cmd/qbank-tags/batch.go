package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/executor/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Run every conversion in a YAML job file",
		Long: "Run the jobs listed in a YAML file and print one query per job.\n" +
			"Patterns in the file apply on top of the saved custom templates for\n" +
			"this run only. History and preferences are not changed.",
		Example: `  qbank-tags batch blocks.yaml
  qbank-tags batch blocks.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := batch.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = batch.OutputFormat(format)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			exec := batch.NewExecutor(cfg, config.GetCustomPatterns().Overrides(), a.logger)
			results, err := exec.Run(cmd.Context())
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if path := cfg.OutputPath(); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := batch.Write(out, results, cfg.Output.Format); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			a.logger.Infof("batch %s: %d jobs", args[0], len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "override the output format (text, json, yaml)")
	return cmd
}
