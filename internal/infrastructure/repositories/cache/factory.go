package cache

import (
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"context"
	"fmt"
)

// Backend names a Store implementation
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config selects and configures the Store backend
type Config struct {
	Backend Backend
	Redis   RedisConfig
}

// Open builds the Store named by cfg.Backend. For redis this blocks until
// the connection is verified or the connect attempts are used up.
func Open(ctx context.Context, cfg Config) (interfaces.Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		logging.Info(ctx, "Creating memory cache", logging.Fields{"type": "memory"})
		return NewMemoryStore(), nil

	case BackendRedis, "":
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"attempts": cfg.Redis.ConnectAttempts,
		})
		return Connect(ctx, cfg.Redis)

	default:
		return nil, apperr.Config("cache.Open", fmt.Errorf("unsupported cache backend: %q", cfg.Backend))
	}
}
