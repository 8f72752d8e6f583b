package ports

import "context"

// BlobStore persists the serialized document as a single string per key.
type BlobStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrBlobNotFound if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
