package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

// SectionIDCustomPatterns is the identifier for the custom patterns section
const SectionIDCustomPatterns = "custom_patterns"

// CustomPatternsSection stores user templates that replace the built-in
// tag patterns for individual bank/step pairs.
type CustomPatternsSection struct {
	patterns map[string]string
	mu       sync.RWMutex
}

// NewCustomPatternsSection creates an empty section (all defaults apply).
func NewCustomPatternsSection() *CustomPatternsSection {
	return &CustomPatternsSection{patterns: make(map[string]string)}
}

// ID returns the section identifier.
func (s *CustomPatternsSection) ID() string {
	return SectionIDCustomPatterns
}

// Title returns the section title.
func (s *CustomPatternsSection) Title() string {
	return "Custom Tag Patterns"
}

// Description returns the section description.
func (s *CustomPatternsSection) Description() string {
	return "Override the tag pattern used for a bank and step. Use {ID} where the question ID goes."
}

// Data returns the current configuration data.
func (s *CustomPatternsSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patterns := make(map[string]any, len(s.patterns))
	for k, v := range s.patterns {
		patterns[k] = v
	}
	return map[string]any{"patterns": patterns}
}

// SetData replaces the stored patterns. Keys are canonicalized to
// "Bank_Step"; keys naming no supported bank and step are dropped.
func (s *CustomPatternsSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	raw, ok := data["patterns"]
	if !ok {
		return nil
	}

	patterns := make(map[string]string)
	switch v := raw.(type) {
	case map[string]any:
		for key, value := range v {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for pattern %s: expected string, got %T", key, value)
			}
			addStoredPattern(patterns, key, str)
		}
	case map[string]string:
		for key, value := range v {
			addStoredPattern(patterns, key, value)
		}
	case nil:
	default:
		return fmt.Errorf("invalid value type for patterns: expected object, got %T", raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = patterns
	return nil
}

// Validate rejects keys that do not name a supported bank and step.
func (s *CustomPatternsSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for key := range s.patterns {
		if err := validatePatternKey(key); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every override.
func (s *CustomPatternsSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = make(map[string]string)
}

// Overrides returns a copy suitable for qbank.Resolve.
func (s *CustomPatternsSection) Overrides() qbank.PatternOverrides {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(qbank.PatternOverrides, len(s.patterns))
	for k, v := range s.patterns {
		out[k] = v
	}
	return out
}

// Get returns the override for key, if any.
func (s *CustomPatternsSection) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patterns[key]
	return p, ok
}

// Set stores template for key. An empty template removes the override.
func (s *CustomPatternsSection) Set(key, template string) error {
	if err := validatePatternKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if template == "" {
		delete(s.patterns, key)
		return nil
	}
	s.patterns[key] = template
	return nil
}

// Keys lists the keys that currently have an override, sorted.
func (s *CustomPatternsSection) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.patterns))
	for k := range s.patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func addStoredPattern(patterns map[string]string, key, template string) {
	if template == "" {
		return
	}
	if canonical, ok := canonicalPatternKey(key); ok {
		patterns[canonical] = template
	}
}

// canonicalPatternKey parses key loosely and reports whether it names a
// supported bank and step.
func canonicalPatternKey(key string) (string, bool) {
	parsed, err := qbank.ParsePatternKey(key)
	if err != nil || !qbank.IsSupported(parsed.Bank, parsed.Step) {
		return "", false
	}
	return parsed.String(), true
}

// validatePatternKey accepts only canonical keys of supported pairs, the
// same set SetData keeps.
func validatePatternKey(key string) error {
	if canonical, ok := canonicalPatternKey(key); ok && canonical == key {
		return nil
	}
	return fmt.Errorf("unknown pattern key %q", key)
}
