package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/config"
)

// RedisOptions builds client options from cfg. REDIS_URL wins over the
// host/port settings.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// NewRedisClient creates a new Redis client and checks the connection
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}
