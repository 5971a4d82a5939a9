package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/config"
	"github.com/pageza/alchemorsel-v2/assistant/internal/database"
	"github.com/pageza/alchemorsel-v2/assistant/internal/logging"
	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
	"github.com/pageza/alchemorsel-v2/assistant/internal/service"
	"github.com/pageza/alchemorsel-v2/assistant/internal/toolbox"
)

// app holds the components shared by the chat and serve commands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	redis   *redis.Client
	toolbox *toolbox.Toolbox
}

// newApp loads configuration and wires the toolbox. Redis and the model
// endpoint are optional; when they are unavailable the assistant runs without
// caching, rate limiting or the model command.
func newApp(ctx context.Context, v *viper.Viper) (*app, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			a.redis = client
		}
	}

	opts := []toolbox.Option{toolbox.WithLogger(logger.Named("toolbox"))}
	if completer := a.completionService(); completer != nil {
		opts = append(opts, toolbox.WithCompleter(completer))
	}

	a.toolbox = toolbox.New(recipe.Default(), opts...)
	logger.Info("assistant ready",
		zap.String("env", string(cfg.Environment)),
		zap.Int("recipes", a.toolbox.Recipes().Len()),
		zap.Bool("model", cfg.ModelEnabled()),
		zap.Bool("redis", a.redis != nil))
	return a, nil
}

func (a *app) completionService() *service.CompletionService {
	if !a.cfg.ModelEnabled() {
		return nil
	}

	opts := []service.CompletionOption{service.WithLogger(a.logger.Named("completion"))}
	if a.redis != nil && a.cfg.CompletionCacheTTL > 0 {
		opts = append(opts, service.WithCache(service.NewRedisCompletionCache(a.redis, a.cfg.CompletionCacheTTL)))
	}

	svc, err := service.NewCompletionService(service.CompletionConfig{
		APIKey:      a.cfg.ModelAPIKey,
		APIURL:      a.cfg.ModelAPIURL,
		Model:       a.cfg.ModelName,
		Temperature: &a.cfg.ModelTemperature,
		Timeout:     a.cfg.ModelTimeout,
		MaxRetries:  a.cfg.ModelMaxRetries,
	}, opts...)
	if err != nil {
		a.logger.Warn("model disabled", zap.Error(err))
		return nil
	}
	return svc
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
