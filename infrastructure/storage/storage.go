// Package storage opens the result cache backend named in configuration.
package storage

import (
	"context"
	"errors"
	"fmt"

	domaincache "github.com/felixgeelhaar/calc-go/domain/cache"
	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/badger"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/redis"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/sqlite"
)

// ErrUnknownBackend is returned for a cache backend that is not supported.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Closer releases a backend.
type Closer func() error

func noopCloser() error { return nil }

// OpenCache opens the backend cfg names. The "none" backend returns a nil
// cache. Redis, badger and sqlite backends are wrapped in a circuit breaker.
func OpenCache(ctx context.Context, cfg domainconfig.CacheConfig) (domaincache.Cache, Closer, error) {
	switch cfg.Backend {
	case domainconfig.CacheNone:
		return nil, noopCloser, nil

	case "", domainconfig.CacheMemory:
		c := memory.NewCache(
			memory.WithMaxSize(cfg.MaxEntries),
			memory.WithDefaultTTL(cfg.TTL.Duration()),
		)
		return c, noopCloser, nil

	case domainconfig.CacheRedis:
		c, err := redis.NewCache(ctx, redis.FromSettings(cfg.Redis))
		if err != nil {
			return nil, nil, fmt.Errorf("open redis cache: %w", err)
		}
		return guard(c, cfg), c.Close, nil

	case domainconfig.CacheBadger:
		c, err := badger.NewCache(badger.FromSettings(cfg.Badger))
		if err != nil {
			return nil, nil, fmt.Errorf("open badger cache: %w", err)
		}
		return guard(c, cfg), c.Close, nil

	case domainconfig.CacheSQLite:
		c, err := sqlite.NewCache(sqlite.FromSettings(cfg.SQLite))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return guard(c, cfg), c.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

func guard(c domaincache.Cache, cfg domainconfig.CacheConfig) domaincache.Cache {
	bc := resilience.DefaultBreakerConfig()
	if cfg.BreakerThreshold > 0 {
		bc.Threshold = cfg.BreakerThreshold
	}
	return resilience.NewGuardedCache(c, bc)
}
