// Package cache memoizes task listings and search results. Backends store
// opaque JSON blobs under string keys; Memoizer adds cache-aside reads with
// stampede protection and wholesale invalidation on any task mutation.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskr-api/internal/config"
)

// Backend names accepted in configuration.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Cache is a key-value store of encoded results.
type Cache interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the backend's TTL.
	Set(ctx context.Context, key string, value []byte) error

	// InvalidateAll drops every entry this cache owns.
	InvalidateAll(ctx context.Context) error
}

// New builds the backend selected by cfg. The redis backend is pinged
// once so a bad address fails at startup rather than on first request.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (Cache, func() error, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	noClose := func() error { return nil }

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryCache(ttl), noClose, nil
	case BackendNone, "":
		return NopCache{}, noClose, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}

		logger.Info("redis cache connected", "addr", cfg.RedisAddr, "prefix", cfg.Prefix)
		return NewRedisCache(client, cfg.Prefix, ttl), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte) error          { return nil }
func (NopCache) InvalidateAll(context.Context) error                { return nil }
