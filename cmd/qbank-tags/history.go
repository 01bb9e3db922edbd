package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent conversions",
	}

	var limit int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent conversions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := config.GetHistory().List()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded yet")
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ID", "When", "Bank", "Step", "IDs")
			for _, r := range records {
				row := []string{
					shortID(r.ID),
					r.Timestamp.Local().Format(time.DateTime),
					string(r.Bank),
					r.Step.Label(),
					strconv.Itoa(r.IDCount),
				}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show ID",
			Short: "Print the input and query of one conversion",
			Long:  "Print one conversion. ID may be any unique prefix of the record ID.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := config.GetHistory().Get(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:    %s\n", r.ID)
				fmt.Fprintf(out, "When:  %s\n", r.Timestamp.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Bank:  %s\n", r.Bank)
				fmt.Fprintf(out, "Step:  %s\n", r.Step.Label())
				fmt.Fprintf(out, "IDs:   %d\n", r.IDCount)
				fmt.Fprintf(out, "Input:\n%s\n", r.Input)
				fmt.Fprintf(out, "Query:\n%s\n", r.Query)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every recorded conversion",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				config.GetHistory().Clear()
				a.logger.Infof("history cleared")
				if err := a.save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			},
		},
	)
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
