package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/draftkit/internal/config"
	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEngine_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Store.Driver = config.DriverRedis
	cfg.Store.RedisURL = "redis://" + mr.Addr()
	cfg.Store.Prefix = "test:"
	cfg.Store.Lock = true
	cfg.Store.EncryptionKey = strings.Repeat("01", 32)

	reg := prometheus.NewRegistry()
	engine, closeStore, err := CreateEngine(EngineOptions{
		Config:     cfg,
		Logger:     logging.NewNop(),
		Registerer: reg,
	})
	require.NoError(t, err)
	defer closeStore()

	state := engine.Mount(ctx)
	require.NoError(t, engine.Save(ctx, state))

	blob, err := mr.Get("test:doc:" + domain.DefaultStorageKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blob, "enc:v1:"), "blob is encrypted")
	assert.False(t, mr.Exists("test:lock:"+domain.DefaultStorageKey), "lock is released")

	count, err := testutil.GatherAndCount(reg, "draftkit_saves_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateEngine_Drivers(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverFile, config.DriverLoam} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Default()
			cfg.Store.Driver = driver
			cfg.Store.Path = t.TempDir()

			engine, closeStore, err := CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewNop()})
			require.NoError(t, err)
			defer closeStore()
			assert.NotNil(t, engine.Store())
		})
	}
}

func TestCreateEngine_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Store.EncryptionKey = "not-a-key"
	_, _, err := CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "invalid encryption key")

	cfg = config.Default()
	cfg.Store.Driver = config.DriverRedis
	cfg.Store.RedisURL = "http://nope"
	_, _, err = CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "invalid redis url")

	cfg = config.Default()
	cfg.Store.Driver = "s3"
	_, _, err = CreateEngine(EngineOptions{Config: cfg, Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "unknown store driver")
}
