package domain

import "time"

// HandleResult is returned to the host surface for paste and key command events.
type HandleResult string

const (
	// Handled signals the host to suppress its default processing of the input.
	Handled HandleResult = "handled"
	// NotHandled lets the host apply its default behavior.
	NotHandled HandleResult = "not-handled"
)

const (
	// DefaultStorageKey is the single key shared by restore-on-mount and write-on-change.
	DefaultStorageKey = "editorContent"

	// DefaultSaveIndicator is how long the "saving" flag stays raised after an explicit save.
	DefaultSaveIndicator = 1500 * time.Millisecond
)
