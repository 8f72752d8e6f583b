package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/ports"
)

// MockStore is a minimal map-backed BlobStore used to exercise the contract itself.
type MockStore struct {
	data map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]string)}
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrBlobNotFound
	}
	return v, nil
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestBlobStore_Contract(t *testing.T) {
	ports.RunBlobStoreContract(t, NewMockStore())
}
