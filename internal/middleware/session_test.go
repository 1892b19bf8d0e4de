package middleware

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisStorage connects to REDIS_ADDR and skips the test when no server
// is configured.
func newRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	storage := NewRedisStorage(client)
	require.NoError(t, storage.Reset())
	t.Cleanup(func() {
		_ = storage.Reset()
		_ = storage.Close()
	})
	return storage
}

func TestRedisStorage(t *testing.T) {
	storage := newRedisStorage(t)

	val, err := storage.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("abc", []byte("payload"), time.Minute))
	val, err = storage.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, storage.Delete("abc"))
	val, err = storage.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("one", []byte("1"), 0))
	require.NoError(t, storage.Set("two", []byte("2"), 0))
	require.NoError(t, storage.Reset())
	val, err = storage.Get("one")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageIgnoresEmptyKeys(t *testing.T) {
	storage := NewRedisStorage(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	defer storage.Close()

	val, err := storage.Get("")
	assert.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, storage.Set("", []byte("x"), time.Minute))
	assert.NoError(t, storage.Set("k", nil, time.Minute))
	assert.NoError(t, storage.Delete(""))
}
