package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/draftkit/internal/runtime"
	"github.com/aretw0/draftkit/internal/testutils"
	"github.com/aretw0/draftkit/pkg/adapters/memory"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/ports"
)

func newDocEngine() *document.Engine {
	n := 0
	return document.NewEngine(document.WithKeyGenerator(func() string {
		n++
		return fmt.Sprintf("b%d", n)
	}))
}

func newEngine(t *testing.T, opts ...runtime.EngineOption) (*runtime.Engine, *document.Engine, *memory.Store) {
	t.Helper()
	doc := newDocEngine()
	store := memory.NewStore()
	return runtime.NewEngine(doc, store, opts...), doc, store
}

// typeText inserts text one rune at a time, delivering a change event per keystroke.
func typeText(t *testing.T, e *runtime.Engine, doc *document.Engine, s *document.State, text string) *document.State {
	t.Helper()
	return testutils.TypeText(t, doc, e, s, text)
}

// failingStore rejects every write.
type failingStore struct {
	ports.BlobStore
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

// brokenSplit is a document engine that cannot split blocks.
type brokenSplit struct {
	*document.Engine
}

func (brokenSplit) SplitBlock(c *document.Content, sel document.Selection) (*document.Content, error) {
	return nil, document.ErrInvalidSelection
}

// recordingLocker records lock and unlock calls.
type recordingLocker struct {
	mu     sync.Mutex
	calls  []string
	failAt int
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, "lock:"+key)
	if l.failAt > 0 && len(l.calls) >= l.failAt {
		return nil, errors.New("lock busy")
	}
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, "unlock:"+key)
		return nil
	}, nil
}
