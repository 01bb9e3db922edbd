// Package batch converts many ID lists in one non-interactive run,
// driven by a YAML job file.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// OutputFormat selects how results are written.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Config is a batch job file.
type Config struct {
	// Defaults apply to jobs that leave bank or step empty
	Defaults Selection `yaml:"defaults" json:"defaults"`

	// Patterns are merged over the caller's overrides for this run only
	Patterns map[string]string `yaml:"patterns" json:"patterns"`

	Jobs   []Job        `yaml:"jobs" json:"jobs"`
	Output OutputConfig `yaml:"output" json:"output"`

	// BaseDir resolves relative job files; set to the job file's directory by LoadConfig
	BaseDir string `yaml:"-" json:"-"`
}

// Selection is a bank and step pair as written in YAML.
type Selection struct {
	Bank string `yaml:"bank" json:"bank"`
	Step string `yaml:"step" json:"step"`
}

// Job is one conversion. IDs and File may both be set; their text is joined.
type Job struct {
	Name string `yaml:"name" json:"name"`
	IDs  string `yaml:"ids" json:"ids"`
	File string `yaml:"file" json:"file"`
	Bank string `yaml:"bank" json:"bank"`
	Step string `yaml:"step" json:"step"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Format OutputFormat `yaml:"format" json:"format"`
	// Path is relative to BaseDir; empty means stdout
	Path string `yaml:"path" json:"path"`
}

// DefaultConfig returns a config with UWorld / Step 2 defaults and text output.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Selection{Bank: string(qbank.UWorld), Step: string(qbank.Step2)},
		Output:   OutputConfig{Format: FormatText},
	}
}

// LoadConfig reads a YAML job file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	cfg.BaseDir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	return cfg, nil
}

// Validate checks jobs, defaults, pattern keys and output format.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}

	if _, err := qbank.ParseBank(c.Defaults.Bank); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if _, err := qbank.ParseStep(c.Defaults.Step); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for key := range c.Patterns {
		if _, err := qbank.ParsePatternKey(key); err != nil {
			return fmt.Errorf("patterns: %w", err)
		}
	}

	names := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.Name == "" {
			return fmt.Errorf("job %d: name is required", i+1)
		}
		if names[job.Name] {
			return fmt.Errorf("job %q: duplicate name", job.Name)
		}
		names[job.Name] = true

		if job.IDs == "" && job.File == "" {
			return fmt.Errorf("job %q: ids or file is required", job.Name)
		}
		if job.Bank != "" {
			if _, err := qbank.ParseBank(job.Bank); err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
		}
		if job.Step != "" {
			if _, err := qbank.ParseStep(job.Step); err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
		}
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'yaml')", c.Output.Format)
	}

	return nil
}

// resolve returns the job's bank and step, falling back to the defaults.
// Validate must have passed.
func (c *Config) resolve(job Job) (qbank.Bank, qbank.Step) {
	bankName, stepName := c.Defaults.Bank, c.Defaults.Step
	if job.Bank != "" {
		bankName = job.Bank
	}
	if job.Step != "" {
		stepName = job.Step
	}
	bank, _ := qbank.ParseBank(bankName)
	step, _ := qbank.ParseStep(stepName)
	return bank, step
}

// OutputPath returns the absolute or BaseDir-relative output path, or "".
func (c *Config) OutputPath() string {
	if c.Output.Path == "" || filepath.IsAbs(c.Output.Path) {
		return c.Output.Path
	}
	return filepath.Join(c.BaseDir, c.Output.Path)
}
