package cache_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"video-distributor/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisCredential connects to REDIS_ADDR (default localhost:6379) and skips
// when no server is reachable. Each test gets its own key.
func newRedisCredential(t *testing.T) (*cache.RedisCredential, *redis.Client, string) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client, err := cache.NewCache(context.Background(), addr, "", os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	key := "test_gemini_api_key_" + uuid.NewString()
	t.Cleanup(func() {
		_ = client.Del(context.Background(), key).Err()
		_ = client.Close()
	})
	return cache.NewRedisCredential(client, key), client, key
}

func TestRedisCredential_AbsentKeyIsEmpty(t *testing.T) {
	store, _, _ := newRedisCredential(t)

	key, err := store.GetAPIKey(context.Background())

	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestRedisCredential_SaveTrimsAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	store, client, redisKey := newRedisCredential(t)

	require.NoError(t, store.SaveAPIKey(ctx, "  AIza-test \n"))

	key, err := store.GetAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", key)

	raw, err := client.Get(ctx, redisKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", raw)

	ttl, err := client.TTL(ctx, redisKey).Result()
	require.NoError(t, err)
	// -1: the key exists without an expiry
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestRedisCredential_SaveEmptyDeletesEntry(t *testing.T) {
	ctx := context.Background()
	store, client, redisKey := newRedisCredential(t)
	require.NoError(t, store.SaveAPIKey(ctx, "AIza-test"))

	require.NoError(t, store.SaveAPIKey(ctx, "   "))

	_, err := client.Get(ctx, redisKey).Result()
	assert.True(t, errors.Is(err, redis.Nil))
	key, err := store.GetAPIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
}
