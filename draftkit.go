package draftkit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/internal/runtime"
	loamAdapter "github.com/aretw0/draftkit/pkg/adapters/loam"
	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/persistence/middleware"
	"github.com/aretw0/draftkit/pkg/ports"
)

// Engine is the high-level entry point for the draftkit library.
// It wraps the internal trigger engine and provides a simplified API for hosts.
type Engine struct {
	runtime     *runtime.Engine
	doc         ports.DocumentEngine
	store       ports.BlobStore
	middlewares []middleware.Middleware
	locker      ports.Locker
	lockTTL     time.Duration
	table       autoformat.Table
	key         string
	indicator   time.Duration
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom BlobStore, bypassing the default Loam initialization.
func WithStore(s ports.BlobStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithMiddleware wraps the store (e.g. with encryption). The first middleware is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Engine) {
		e.middlewares = append(e.middlewares, mws...)
	}
}

// WithDocumentEngine replaces the built-in document engine.
func WithDocumentEngine(doc ports.DocumentEngine) Option {
	return func(e *Engine) {
		e.doc = doc
	}
}

// WithLocker serializes writes across processes sharing the store.
func WithLocker(l ports.Locker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStorageKey sets the key the document is persisted under (default: "editorContent").
func WithStorageKey(key string) Option {
	return func(e *Engine) {
		e.key = key
	}
}

// WithTable replaces the trigger pattern table. The table is validated by New.
func WithTable(table autoformat.Table) Option {
	return func(e *Engine) {
		e.table = table
	}
}

// WithSaveIndicator sets how long Saving reports true after an explicit save.
func WithSaveIndicator(d time.Duration) Option {
	return func(e *Engine) {
		e.indicator = d
	}
}

// New initializes a new draftkit Engine.
// By default, documents are stored in a Loam repository at the given path.
// If WithStore option is provided, path can be empty and Loam is skipped.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		table: autoformat.DefaultTable,
		key:   domain.DefaultStorageKey,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pattern table: %w", err)
	}

	if eng.store == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom store is provided")
		}
		store, err := loamAdapter.New(path)
		if err != nil {
			return nil, err
		}
		eng.store = store
	}
	if path != "" {
		eng.Name = filepath.Base(path)
	}

	eng.store = middleware.Chain(eng.store, eng.middlewares...)

	if eng.doc == nil {
		eng.doc = document.NewEngine()
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("document", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithStorageKey(eng.key),
		runtime.WithTable(eng.table),
		runtime.WithSaveIndicator(eng.indicator),
	}
	if eng.locker != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLocker(eng.locker, eng.lockTTL))
	}

	eng.runtime = runtime.NewEngine(eng.doc, eng.store, runtimeOpts...)
	return eng, nil
}

// Mount restores the persisted document, or an empty one.
func (e *Engine) Mount(ctx context.Context) *document.State {
	return e.runtime.Mount(ctx)
}

// Restore is Mount with the restore error exposed.
func (e *Engine) Restore(ctx context.Context) (*document.State, error) {
	return e.runtime.Restore(ctx)
}

// OnChange must be called with every state produced by the host (one per keystroke).
// It returns the state the host should display.
func (e *Engine) OnChange(ctx context.Context, s *document.State) *document.State {
	return e.runtime.OnChange(ctx, s)
}

// OnPaste offers pasted text to the trigger engine before the host inserts it.
func (e *Engine) OnPaste(ctx context.Context, text, html string, s *document.State) (domain.HandleResult, *document.State) {
	return e.runtime.OnPaste(ctx, text, html, s)
}

// OnKeyCommand offers a named key command to the trigger engine.
func (e *Engine) OnKeyCommand(ctx context.Context, command string, s *document.State) (domain.HandleResult, *document.State) {
	return e.runtime.OnKeyCommand(ctx, command, s)
}

// Save persists the document explicitly and raises the saving indicator.
func (e *Engine) Save(ctx context.Context, s *document.State) error {
	return e.runtime.Save(ctx, s)
}

// Saving reports whether the saving indicator is raised.
func (e *Engine) Saving() bool {
	return e.runtime.Saving()
}

// Document returns the document engine used for edits.
func (e *Engine) Document() ports.DocumentEngine {
	return e.doc
}

// Store returns the (possibly wrapped) BlobStore used by the engine.
func (e *Engine) Store() ports.BlobStore {
	return e.store
}

// StorageKey returns the key the document is persisted under.
func (e *Engine) StorageKey() string {
	return e.key
}
