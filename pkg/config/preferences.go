package config

import (
	"fmt"
	"sync"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

const (
	// SectionIDPreferences is the identifier for the preferences section
	SectionIDPreferences = "preferences"

	defaultStep = qbank.Step2
	defaultBank = qbank.UWorld
)

// PreferencesSection remembers the last bank and step the user picked.
type PreferencesSection struct {
	LastStep qbank.Step `json:"last_selected_step"`
	LastBank qbank.Bank `json:"last_selected_bank"`
	mu       sync.RWMutex
}

// NewPreferencesSection creates preferences with UWorld / Step 2 selected.
func NewPreferencesSection() *PreferencesSection {
	return &PreferencesSection{
		LastStep: defaultStep,
		LastBank: defaultBank,
	}
}

// ID returns the section identifier.
func (s *PreferencesSection) ID() string {
	return SectionIDPreferences
}

// Title returns the section title.
func (s *PreferencesSection) Title() string {
	return "Preferences"
}

// Description returns the section description.
func (s *PreferencesSection) Description() string {
	return "Remembers the last selected question bank and USMLE step."
}

// Data returns the current configuration data.
func (s *PreferencesSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"last_selected_step": string(s.LastStep),
		"last_selected_bank": string(s.LastBank),
	}
}

// SetData updates the preferences from stored data. Values that do not
// parse fall back to the defaults.
func (s *PreferencesSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "last_selected_step":
			s.LastStep = defaultStep
			if str, ok := value.(string); ok {
				if step, err := qbank.ParseStep(str); err == nil {
					s.LastStep = step
				}
			}

		case "last_selected_bank":
			s.LastBank = defaultBank
			if str, ok := value.(string); ok {
				if bank, err := qbank.ParseBank(str); err == nil {
					s.LastBank = bank
				}
			}
		}
	}

	if !qbank.IsSupported(s.LastBank, s.LastStep) {
		s.LastStep = defaultStep
	}
	return nil
}

// Validate rejects a bank and step pair with no built-in template.
func (s *PreferencesSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := qbank.ParseBank(string(s.LastBank)); err != nil {
		return err
	}
	if _, err := qbank.ParseStep(string(s.LastStep)); err != nil {
		return err
	}
	if !qbank.IsSupported(s.LastBank, s.LastStep) {
		return fmt.Errorf("%s is not available for %s", s.LastStep.Label(), s.LastBank)
	}
	return nil
}

// Reset restores UWorld / Step 2.
func (s *PreferencesSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastStep = defaultStep
	s.LastBank = defaultBank
}

// Selection returns the remembered bank and step.
func (s *PreferencesSection) Selection() (qbank.Bank, qbank.Step) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastBank, s.LastStep
}

// SetSelection remembers bank and step.
// A step the bank does not support is replaced by Step 2.
func (s *PreferencesSection) SetSelection(bank qbank.Bank, step qbank.Step) {
	if !qbank.IsSupported(bank, step) {
		step = defaultStep
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastBank = bank
	s.LastStep = step
}
