package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

func newPatternsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "Manage custom tag templates",
		Long: "Custom templates replace the built-in tag format for one bank and step.\n" +
			"Keys have the form Bank_Step, e.g. UWorld_Step2. Every {ID} in a\n" +
			"template is replaced by the question ID.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List the effective template for every bank and step",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				custom := config.GetCustomPatterns()

				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Key", "Template", "Source")
				for _, key := range qbank.AllPatternKeys() {
					template, _ := qbank.DefaultPattern(key)
					source := "default"
					if p, ok := custom.Get(key.String()); ok {
						template, source = p, "custom"
					}
					if err := table.Append([]string{key.String(), template, source}); err != nil {
						return err
					}
				}
				return table.Render()
			},
		},
		&cobra.Command{
			Use:   "set KEY TEMPLATE",
			Short: "Override the template for one bank and step",
			Example: `  qbank-tags patterns set UWorld_Step2 'tag:#AK_Step2_v13::#UWorld::Step::{ID}'
  qbank-tags patterns set amboss_step1 ''    # same as reset`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := qbank.ParsePatternKey(args[0])
				if err != nil {
					return err
				}
				if err := config.GetCustomPatterns().Set(key.String(), args[1]); err != nil {
					return err
				}
				a.logger.Infof("pattern %s set", key)
				if err := a.save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", key)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset [KEY]",
			Short: "Restore the built-in template for one key, or for all keys",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				custom := config.GetCustomPatterns()
				if len(args) == 0 {
					custom.Reset()
					a.logger.Infof("all patterns reset")
				} else {
					key, err := qbank.ParsePatternKey(args[0])
					if err != nil {
						return err
					}
					if err := custom.Set(key.String(), ""); err != nil {
						return err
					}
					a.logger.Infof("pattern %s reset", key)
				}
				if err := a.save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Patterns reset")
				return nil
			},
		},
	)
	return cmd
}
