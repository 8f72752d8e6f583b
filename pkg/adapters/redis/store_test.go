package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/draftkit/pkg/adapters/redis"
	"github.com/aretw0/draftkit/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunBlobStoreContract(t, store)
}

func TestRedisStore_BlobNeverExpires(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "editorContent", "{}"))
	assert.Zero(t, mr.TTL("draftkit:doc:editorContent"))

	mr.FastForward(24 * time.Hour)

	got, err := store.Get(ctx, "editorContent")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))

	err := store.Set(context.Background(), "editorContent", "{}")
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:doc:editorContent"), "Expected key with custom prefix to exist")
	assert.Equal(t, "custom:app:", store.Prefix())
}
