package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/draftkit/pkg/adapters/memory"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunBlobStoreContract(t, store)
}

func TestMemoryStore_Keys(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Set(context.Background(), "editorContent", "{}"))
	assert.Equal(t, []string{"editorContent"}, store.Keys())
}
