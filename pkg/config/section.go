package config

// Section is one independently persisted part of the configuration blob.
// Sections hold their own state and convert it to and from the generic
// map form the Store persists.
type Section interface {
	// ID returns the key the section is stored under
	ID() string

	// Title returns a short human-readable name
	Title() string

	// Description explains what the section controls
	Description() string

	// Data returns the section state in JSON-compatible form
	Data() map[string]any

	// SetData replaces section state from stored data.
	// Unknown keys are ignored.
	SetData(data map[string]any) error

	// Validate checks the current state before it is saved
	Validate() error

	// Reset restores defaults
	Reset()
}
