package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/cache"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache falls back to a cache that always misses when Redis is
// disabled. An unreachable Redis at startup is logged, not fatal: reads go
// to Postgres until it comes back.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (queries.AvailabilityCache, shared.AvailabilityInvalidator) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, availability is read from the database")
		return cache.Noop{}, cache.Noop{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	c := cache.NewAvailabilityCache(client, cfg.Redis.AvailabilityTTL)
	return c, c
}
