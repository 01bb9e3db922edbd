// Package config persists user preferences, custom tag patterns and
// conversion history in a JSON file under ~/.qbank-tags.
//
// The conversion core in pkg/qbank never reads this package; adapters load
// the values here and pass them in explicitly.
package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// New builds a manager over the file at path with every section
// registered and loaded. An empty path uses DefaultPath.
func New(path string) (*Manager, error) {
	store, err := NewFileStore(path)
	if err != nil {
		return nil, err
	}

	manager := NewManager(store)
	sections := []Section{
		NewPreferencesSection(),
		NewCustomPatternsSection(),
		NewHistorySection(),
	}
	for _, section := range sections {
		if err := manager.RegisterSection(section); err != nil {
			return nil, err
		}
	}

	if err := manager.LoadAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Initialize creates the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	manager, err := New(configPath)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// Save writes every section of the global configuration to disk.
func Save() error {
	return Global().SaveAll()
}

// GetPreferences returns the preferences section from global config.
// Returns nil if config is not initialized.
func GetPreferences() *PreferencesSection {
	return globalSection[*PreferencesSection](SectionIDPreferences)
}

// GetCustomPatterns returns the custom patterns section from global config.
// Returns nil if config is not initialized.
func GetCustomPatterns() *CustomPatternsSection {
	return globalSection[*CustomPatternsSection](SectionIDCustomPatterns)
}

// GetHistory returns the conversion history section from global config.
// Returns nil if config is not initialized.
func GetHistory() *HistorySection {
	return globalSection[*HistorySection](SectionIDHistory)
}

func globalSection[T Section](id string) T {
	var zero T
	if !IsInitialized() {
		return zero
	}

	section, ok := Global().GetSection(id)
	if !ok {
		return zero
	}

	typed, ok := section.(T)
	if !ok {
		return zero
	}
	return typed
}
