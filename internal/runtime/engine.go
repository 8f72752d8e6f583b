package runtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/ports"
)

// DefaultLockTTL bounds how long a write may hold the storage lock.
const DefaultLockTTL = 2 * time.Second

// Engine is the autoformat trigger engine.
// It matches typed and pasted markers against the pattern table, dispatches
// the resulting transform to the document engine and persists every
// committed change.
type Engine struct {
	doc     ports.DocumentEngine
	store   ports.BlobStore
	locker  ports.Locker
	lockTTL time.Duration
	table   autoformat.Table
	key     string
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	indicator  time.Duration
	mu         sync.Mutex
	saving     bool
	savingGen  uint64
	savingStop *time.Timer
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStorageKey overrides the key the document is persisted under.
func WithStorageKey(key string) EngineOption {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

// WithTable replaces the trigger pattern table.
func WithTable(table autoformat.Table) EngineOption {
	return func(e *Engine) {
		if len(table) > 0 {
			e.table = table
		}
	}
}

// WithSaveIndicator sets how long Saving reports true after an explicit save.
func WithSaveIndicator(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.indicator = d
		}
	}
}

// WithLocker serializes writes across processes sharing the same store.
func WithLocker(locker ports.Locker, ttl time.Duration) EngineOption {
	return func(e *Engine) {
		e.locker = locker
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// NewEngine creates a trigger engine over a document engine and a blob store.
func NewEngine(doc ports.DocumentEngine, store ports.BlobStore, opts ...EngineOption) *Engine {
	e := &Engine{
		doc:       doc,
		store:     store,
		lockTTL:   DefaultLockTTL,
		table:     autoformat.DefaultTable,
		key:       domain.DefaultStorageKey,
		indicator: domain.DefaultSaveIndicator,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StorageKey returns the key the document is persisted under.
func (e *Engine) StorageKey() string {
	return e.key
}

// Table returns the active pattern table.
func (e *Engine) Table() autoformat.Table {
	return e.table
}
