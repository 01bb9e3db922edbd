package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

func newReverseCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reverse [tags...]",
		Short: "Recover question IDs from card tags",
		Long: "Map card tags back to question IDs, grouped by bank.\n\n" +
			"Tags come from the arguments or, when none are given, from stdin\n" +
			"as a whitespace separated tag field.",
		Example: `  qbank-tags reverse '#AK_Step2_v12::#UWorld::Step::21656'
  qbank-tags reverse --json < tags.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := args
			if len(tags) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				tags = qbank.SplitTags(string(data))
			}

			found := qbank.ExtractIDsFromTags(tags)
			a.logger.Infof("reverse: %d tags", len(tags))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(found)
			}
			for _, bank := range qbank.Banks() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", bank, strings.Join(found[bank], ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of one line per bank")
	return cmd
}
