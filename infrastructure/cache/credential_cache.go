package cache

import (
	"context"
	"errors"
	"strings"
	"sync"

	"video-distributor/domain/repository"
	"video-distributor/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCredential keeps the API key under one named Redis key.
type RedisCredential struct {
	client *redis.Client
	key    string
}

var _ repository.ICredential = (*RedisCredential)(nil)

func NewRedisCredential(client *redis.Client, key string) *RedisCredential {
	return &RedisCredential{client: client, key: key}
}

func (c *RedisCredential) GetAPIKey(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		logger.GetLogger().WithField("key", c.key).WithField("error", err).Error("Error while reading credential")
		return "", err
	}
	return val, nil
}

// SaveAPIKey stores the key without expiry. An empty key clears the entry.
func (c *RedisCredential) SaveAPIKey(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return c.client.Del(ctx, c.key).Err()
	}
	if err := c.client.Set(ctx, c.key, apiKey, 0).Err(); err != nil {
		logger.GetLogger().WithField("key", c.key).WithField("error", err).Error("Error while saving credential")
		return err
	}
	return nil
}

// MemoryCredential is the fallback used when Redis is unavailable.
type MemoryCredential struct {
	mu     sync.RWMutex
	apiKey string
}

var _ repository.ICredential = (*MemoryCredential)(nil)

func NewMemoryCredential(initial string) *MemoryCredential {
	return &MemoryCredential{apiKey: strings.TrimSpace(initial)}
}

func (c *MemoryCredential) GetAPIKey(context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, nil
}

func (c *MemoryCredential) SaveAPIKey(_ context.Context, apiKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = strings.TrimSpace(apiKey)
	return nil
}
