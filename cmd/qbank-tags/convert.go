package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qbanktags/qbank-tags/pkg/config"
	"github.com/qbanktags/qbank-tags/pkg/loader"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

type convertOptions struct {
	bank      string
	step      string
	file      string
	glob      string
	dir       string
	copy      bool
	noHistory bool
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [ids...]",
		Short: "Print the tag search query for a list of IDs",
		Long: "Convert question IDs into a tag search query.\n\n" +
			"IDs come from the arguments, --file, --glob, or stdin when none of those\n" +
			"are given. Bank and step default to the last ones used.",
		Example: `  qbank-tags convert 21656 19263
  qbank-tags convert --bank AMBOSS --step 1 Qz9a-1 Xb_2
  qbank-tags convert --file block.xlsx --copy
  pbpaste | qbank-tags convert --step 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.bank, "bank", "b", "", "question bank (UWorld, AMBOSS, COMLEX)")
	f.StringVarP(&opts.step, "step", "s", "", "exam step (1, 2, 3)")
	f.StringVarP(&opts.file, "file", "f", "", "read IDs from a .txt, .csv or .xlsx file")
	f.StringVar(&opts.glob, "glob", "", "read IDs from every file in --dir matching a glob pattern")
	f.StringVar(&opts.dir, "dir", ".", "directory searched by --glob")
	f.BoolVarP(&opts.copy, "copy", "c", false, "also copy the query to the clipboard")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not record the conversion in history")
	cmd.MarkFlagsMutuallyExclusive("file", "glob")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string, opts *convertOptions) error {
	prefs := config.GetPreferences()
	bank, step, err := resolveSelection(prefs, opts.bank, opts.step)
	if err != nil {
		return err
	}

	text, err := a.convertInput(cmd.InOrStdin(), args, opts)
	if err != nil {
		return err
	}

	result := qbank.Convert(qbank.Request{
		Text:      text,
		Bank:      bank,
		Step:      step,
		Overrides: config.GetCustomPatterns().Overrides(),
	})
	a.logger.Infof("convert %s %s: %d ids, status %s", bank, step, len(result.IDs), result.Status)

	switch result.Status {
	case qbank.StatusNoIDs:
		return fmt.Errorf("no %s question IDs found in input", bank)
	case qbank.StatusUnsupported:
		return fmt.Errorf("%s is not available for %s", step.Label(), bank)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Query)

	if opts.copy {
		if err := copyToClipboard(result.Query); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Search query for %s copied to clipboard\n", step.Label())
	}

	prefs.SetSelection(bank, step)
	if !opts.noHistory {
		config.GetHistory().Add(bank, step, text, result.Query, len(result.IDs))
	}
	return a.save()
}

// resolveSelection applies flag values over the remembered selection.
func resolveSelection(prefs *config.PreferencesSection, bankFlag, stepFlag string) (qbank.Bank, qbank.Step, error) {
	bank, step := prefs.Selection()
	if bankFlag != "" {
		b, err := qbank.ParseBank(bankFlag)
		if err != nil {
			return "", "", err
		}
		bank = b
		// A remembered step the new bank lacks falls back like the TUI does.
		if stepFlag == "" && !qbank.IsSupported(bank, step) {
			step = qbank.Step2
		}
	}
	if stepFlag != "" {
		s, err := qbank.ParseStep(stepFlag)
		if err != nil {
			return "", "", err
		}
		step = s
	}
	return bank, step, nil
}

// convertInput gathers the raw ID text from args, files or stdin.
func (a *app) convertInput(stdin io.Reader, args []string, opts *convertOptions) (string, error) {
	var parts []string
	if len(args) > 0 {
		parts = append(parts, strings.Join(args, " "))
	}

	switch {
	case opts.file != "":
		text, err := loader.LoadFile(opts.file)
		if err != nil {
			return "", err
		}
		a.logger.Debugf("loaded ids from %s", opts.file)
		parts = append(parts, text)
	case opts.glob != "":
		text, files, err := loader.LoadGlob(opts.glob, opts.dir)
		if err != nil {
			return "", err
		}
		a.logger.Debugf("loaded ids from %d files matching %q", len(files), opts.glob)
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		parts = append(parts, loader.Normalize(string(data)))
	}
	return strings.Join(parts, "\n"), nil
}
