package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/draftkit/internal/runtime"
	"github.com/aretw0/draftkit/pkg/adapters/memory"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Save(t *testing.T) {
	ctx := context.Background()

	var saves []*domain.SaveEvent
	doc := newDocEngine()
	store := memory.NewStore()
	e := runtime.NewEngine(doc, store,
		runtime.WithSaveIndicator(50*time.Millisecond),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnSave: func(ctx context.Context, ev *domain.SaveEvent) { saves = append(saves, ev) },
		}),
	)

	s := typeText(t, e, doc, e.Mount(ctx), "hi")
	require.Len(t, saves, 2)
	assert.False(t, saves[0].Explicit)

	assert.False(t, e.Saving())
	require.NoError(t, e.Save(ctx, s))
	assert.True(t, e.Saving())
	assert.True(t, saves[2].Explicit)
	assert.Positive(t, saves[2].Bytes)

	assert.Eventually(t, func() bool { return !e.Saving() }, time.Second, 5*time.Millisecond)

	t.Run("Idempotent with automatic save", func(t *testing.T) {
		auto, err := store.Get(ctx, domain.DefaultStorageKey)
		require.NoError(t, err)
		require.NoError(t, e.Save(ctx, s))
		manual, err := store.Get(ctx, domain.DefaultStorageKey)
		require.NoError(t, err)
		assert.Equal(t, auto, manual)
	})
}

func TestEngine_SaveIndicator_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngine(t, runtime.WithSaveIndicator(300*time.Millisecond))
	s := e.Mount(ctx)

	require.NoError(t, e.Save(ctx, s))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, e.Save(ctx, s))
	time.Sleep(200 * time.Millisecond)
	assert.True(t, e.Saving(), "second save restarts the window")

	assert.Eventually(t, func() bool { return !e.Saving() }, time.Second, 5*time.Millisecond)
}

func TestEngine_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()

	var failed *domain.SaveEvent
	doc := newDocEngine()
	e := runtime.NewEngine(doc, failingStore{memory.NewStore()},
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnSave: func(ctx context.Context, ev *domain.SaveEvent) { failed = ev },
		}),
	)

	s := typeText(t, e, doc, e.Mount(ctx), "# ")
	assert.Equal(t, "header-one", string(s.CaretBlock().Type()))
	require.NotNil(t, failed)
	assert.Error(t, failed.Err)

	assert.Error(t, e.Save(ctx, s))
}

func TestEngine_WithLocker(t *testing.T) {
	ctx := context.Background()
	locker := &recordingLocker{}
	e, _, store := newEngine(t, runtime.WithLocker(locker, time.Second))

	require.NoError(t, e.Save(ctx, e.Mount(ctx)))
	assert.Equal(t, []string{"lock:editorContent", "unlock:editorContent"}, locker.calls)

	_, err := store.Get(ctx, domain.DefaultStorageKey)
	assert.NoError(t, err)

	t.Run("Lock failure skips the write", func(t *testing.T) {
		busy := &recordingLocker{failAt: 1}
		e, _, store := newEngine(t, runtime.WithLocker(busy, time.Second))
		assert.Error(t, e.Save(ctx, e.Mount(ctx)))

		_, err := store.Get(ctx, domain.DefaultStorageKey)
		assert.ErrorIs(t, err, domain.ErrBlobNotFound)
	})
}
