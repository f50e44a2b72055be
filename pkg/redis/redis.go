// Package redis wires the optional Redis client. The client is nil when
// no address is configured; consumers degrade instead of failing.
package redis

import (
	"github.com/redis/go-redis/v9"
	"github.com/smartsellhq/smartsell/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("redis",
	fx.Provide(New),
)

func New(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
