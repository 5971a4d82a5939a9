package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const completionKeyPrefix = "assistant:completion:"

// CompletionCache stores model replies keyed by CacheKey
type CompletionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheKey derives a fixed-length cache key from the model and prompt
func CacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// RedisCompletionCache keeps model replies in Redis with a TTL
type RedisCompletionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisCompletionCache creates a cache backed by client
func NewRedisCompletionCache(client *redis.Client, ttl time.Duration) *RedisCompletionCache {
	return &RedisCompletionCache{redis: client, ttl: ttl}
}

// Get returns the cached reply for key, if any
func (c *RedisCompletionCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.redis.Get(ctx, completionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get completion from Redis: %w", err)
	}
	return val, true, nil
}

// Set stores a reply under key
func (c *RedisCompletionCache) Set(ctx context.Context, key, value string) error {
	if err := c.redis.Set(ctx, completionKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save completion to Redis: %w", err)
	}
	return nil
}
