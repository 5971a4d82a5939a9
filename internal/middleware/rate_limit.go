package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter is a fixed-window request counter stored in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *zap.Logger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: logger,
	}
}

// NewAssistantRateLimiter limits assistant commands per client
func NewAssistantRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:assistant",
	}, logger)
}

// RateLimitMiddleware returns a Gin middleware that enforces the limit per
// client IP. Redis failures let the request through.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), client)
		if err != nil {
			rl.logger.Warn("rate limit check failed", zap.String("client", client), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(time.Until(resetTime).Seconds()),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) windowKey(client string, now time.Time) (string, time.Time) {
	windowStart := now.Truncate(rl.config.Window)
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, client, windowStart.Unix()), windowStart.Add(rl.config.Window)
}

// IsAllowed counts a request from client and reports whether it fits the limit.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, client string) (bool, int, time.Time, error) {
	key, resetTime := rl.windowKey(client, time.Now())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, resetTime, nil
}

// GetRemainingRequests returns the number of remaining requests for a client
// without counting a new one
func (rl *RateLimiter) GetRemainingRequests(ctx context.Context, client string) (int, time.Time, error) {
	key, resetTime := rl.windowKey(client, time.Now())

	count, err := rl.redis.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetTime, nil
}
