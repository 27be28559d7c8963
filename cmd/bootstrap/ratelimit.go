package bootstrap

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewRateLimiter,
	),
)

// NewRateLimiter returns nil with RATE_LIMIT_DRIVER=off.
func NewRateLimiter(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) middleware.RateLimiter {
	if cfg.RateLimit.Driver != "redis" {
		return middleware.NewRateLimiter(cfg.RateLimit, nil)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPassword,
		DB:       cfg.RateLimit.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				if !cfg.RateLimit.FailOpen {
					return err
				}
				logger.Warn("Redis unreachable, rate limiting will fail open", "addr", cfg.RateLimit.RedisAddr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return middleware.NewRateLimiter(cfg.RateLimit, rdb)
}
