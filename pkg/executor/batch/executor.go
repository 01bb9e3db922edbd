package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qbanktags/qbank-tags/pkg/loader"
	"github.com/qbanktags/qbank-tags/pkg/logging"
	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// JobResult is the outcome of one job.
type JobResult struct {
	Name   string     `json:"name" yaml:"name"`
	Bank   qbank.Bank `json:"bank" yaml:"bank"`
	Step   qbank.Step `json:"step" yaml:"step"`
	IDs    []string   `json:"ids" yaml:"ids"`
	Query  string     `json:"query" yaml:"query"`
	Status string     `json:"status" yaml:"status"`
}

// Executor runs a batch config.
type Executor struct {
	config    *Config
	overrides qbank.PatternOverrides
	logger    *logging.Logger
}

// NewExecutor merges cfg.Patterns over overrides and returns an executor.
// A nil logger discards log output.
func NewExecutor(cfg *Config, overrides qbank.PatternOverrides, logger *logging.Logger) *Executor {
	merged := make(qbank.PatternOverrides, len(overrides)+len(cfg.Patterns))
	for k, v := range overrides {
		merged[k] = v
	}
	for k, v := range cfg.Patterns {
		if key, err := qbank.ParsePatternKey(k); err == nil {
			k = key.String()
		}
		merged[k] = v
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Executor{config: cfg, overrides: merged, logger: logger}
}

// Run converts every job in order. It stops between jobs when ctx is done.
func (e *Executor) Run(ctx context.Context) ([]JobResult, error) {
	results := make([]JobResult, 0, len(e.config.Jobs))

	for _, job := range e.config.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		text, err := e.jobText(job)
		if err != nil {
			return results, fmt.Errorf("job %q: %w", job.Name, err)
		}

		bank, step := e.config.resolve(job)
		res := qbank.Convert(qbank.Request{Text: text, Bank: bank, Step: step, Overrides: e.overrides})
		e.logger.Infof("batch job %s: %s %s, %d ids, %s", job.Name, bank, step, len(res.IDs), res.Status)

		results = append(results, JobResult{
			Name:   job.Name,
			Bank:   bank,
			Step:   step,
			IDs:    res.IDs,
			Query:  res.Query,
			Status: res.Status.String(),
		})
	}

	return results, nil
}

func (e *Executor) jobText(job Job) (string, error) {
	parts := []string{}
	if job.IDs != "" {
		parts = append(parts, job.IDs)
	}
	if job.File != "" {
		path := job.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.config.BaseDir, path)
		}
		text, err := loader.LoadFile(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

// Write renders results in format.
func Write(w io.Writer, results []JobResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()

	default:
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "# %s (%s %s, %d ids)\n", r.Name, r.Bank, r.Step.Label(), len(r.IDs)); err != nil {
				return err
			}
			line := r.Query
			if line == "" {
				line = "# " + r.Status
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
