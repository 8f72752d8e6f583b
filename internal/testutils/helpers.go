package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupLoamRepo creates a temporary directory and initializes an unversioned
// Loam repository in it. It fails the test immediately on error.
func SetupLoamRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	// Loam sometimes prefers absolute paths, though t.TempDir usually returns one.
	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	opts = append([]loam.Option{loam.WithVersioning(false)}, opts...)
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// ChangeHandler is the slice of the trigger engine TypeText drives.
type ChangeHandler interface {
	OnChange(ctx context.Context, s *document.State) *document.State
}

// TypeText inserts text one rune at a time, reporting each insertion as a
// change event, and returns the final state.
func TypeText(t *testing.T, doc ports.DocumentEngine, h ChangeHandler, s *document.State, text string) *document.State {
	t.Helper()
	for _, r := range text {
		next, err := doc.InsertText(s, string(r))
		require.NoError(t, err)
		s = h.OnChange(context.Background(), next)
	}
	return s
}
