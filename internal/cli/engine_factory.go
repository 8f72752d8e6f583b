package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/draftkit"
	"github.com/aretw0/draftkit/internal/config"
	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/pkg/adapters/file"
	loamAdapter "github.com/aretw0/draftkit/pkg/adapters/loam"
	"github.com/aretw0/draftkit/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/draftkit/pkg/adapters/redis"
	"github.com/aretw0/draftkit/pkg/observability"
	"github.com/aretw0/draftkit/pkg/persistence/middleware"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
)

// EngineOptions configures CreateEngine.
type EngineOptions struct {
	Config config.Config
	Logger *slog.Logger

	// Registerer receives the engine metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

// storeBundle is the persistence wiring derived from the store config.
type storeBundle struct {
	store  ports.BlobStore
	locker ports.Locker
	close  func() error
}

// CreateEngine builds a draftkit engine from the CLI configuration.
// The returned close function releases the store connection.
func CreateEngine(opts EngineOptions) (*draftkit.Engine, func() error, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = CreateLogger(cfg.LogLevel)
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, nil, err
	}

	bundle, err := createStore(cfg.Store, logger)
	if err != nil {
		return nil, nil, err
	}

	engineOpts := []draftkit.Option{
		draftkit.WithStore(bundle.store),
		draftkit.WithLogger(logger),
		draftkit.WithTable(table),
		draftkit.WithStorageKey(cfg.Editor.StorageKey),
		draftkit.WithSaveIndicator(cfg.Editor.SaveIndicator),
	}
	if bundle.locker != nil {
		engineOpts = append(engineOpts, draftkit.WithLocker(bundle.locker, cfg.Store.LockTTL))
	}

	active, fallback, err := cfg.Store.EncryptionKeys()
	if err != nil {
		_ = bundle.close()
		return nil, nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			_ = bundle.close()
			return nil, nil, err
		}
		engineOpts = append(engineOpts, draftkit.WithMiddleware(enc))
	}

	hooks := observability.LoggingHooks(logger)
	if opts.Registerer != nil {
		metrics, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			_ = bundle.close()
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = hooks.Merge(metrics.Hooks())
	}
	engineOpts = append(engineOpts, draftkit.WithLifecycleHooks(hooks))

	engine, err := draftkit.New(cfg.Store.Path, engineOpts...)
	if err != nil {
		_ = bundle.close()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, bundle.close, nil
}

func createStore(cfg config.StoreConfig, logger *slog.Logger) (storeBundle, error) {
	noop := func() error { return nil }
	if cfg.Lock && cfg.Driver != config.DriverRedis {
		logger.Warn("store.lock is only supported by the redis driver; writes are unlocked", "driver", cfg.Driver)
	}

	switch cfg.Driver {
	case config.DriverMemory:
		return storeBundle{store: memory.NewStore(), close: noop}, nil
	case config.DriverFile:
		return storeBundle{store: file.New(cfg.Path), close: noop}, nil
	case config.DriverLoam:
		store, err := loamAdapter.New(cfg.Path)
		if err != nil {
			return storeBundle{}, fmt.Errorf("failed to open loam repository: %w", err)
		}
		return storeBundle{store: store, close: noop}, nil
	case config.DriverRedis:
		redisOpts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return storeBundle{}, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)

		prefix := cfg.Prefix
		if prefix == "" {
			prefix = redisAdapter.DefaultPrefix
		}
		store := redisAdapter.NewFromClient(client, redisAdapter.WithPrefix(prefix))
		bundle := storeBundle{store: store, close: store.Close}
		if cfg.Lock {
			bundle.locker = redisAdapter.NewLocker(client, prefix)
		}
		return bundle, nil
	}
	return storeBundle{}, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// CreateLogger builds the CLI logger. "off" silences it.
func CreateLogger(level string) *slog.Logger {
	if level == "off" {
		return logging.NewNop()
	}
	return logging.New(logging.ParseLevel(level))
}
