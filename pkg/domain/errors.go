package domain

import (
	"errors"
	"fmt"
)

// ErrBlobNotFound is returned by a BlobStore when no value exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// TransformError is returned when the document engine rejects a transform
// for the current selection or content. The caller keeps its previous state.
type TransformError struct {
	Kind string // e.g. "toggle-inline-style"
	Name string // block type or style name
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s(%s) failed: %v", e.Kind, e.Name, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// DeserializeError is returned when a persisted blob is missing or cannot be
// parsed into a valid content tree.
type DeserializeError struct {
	Key string
	Err error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("failed to restore %q: %v", e.Key, e.Err)
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}
