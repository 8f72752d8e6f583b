package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/draftkit/pkg/adapters/file"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunBlobStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "editorContent", `{"blocks":[]}`))

	data, err := os.ReadFile(filepath.Join(dir, "editorContent.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"blocks":[]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Set(ctx, "../escape", "x"))
	_, err := store.Get(ctx, "a/b")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ".."))
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, ".draftkit", file.New("").BasePath)
}
