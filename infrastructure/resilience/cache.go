package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"

	"github.com/felixgeelhaar/calc-go/domain/cache"
)

// ErrCircuitOpen is returned while the breaker short-circuits backend calls.
var ErrCircuitOpen = errors.New("cache circuit open")

// GuardedCache wraps a cache backend with a circuit breaker so a failing
// Redis or database stops adding latency to every evaluation.
type GuardedCache struct {
	inner   cache.Cache
	breaker circuitbreaker.CircuitBreaker[[]byte]
}

// BreakerConfig configures GuardedCache.
type BreakerConfig struct {
	// Threshold is the number of consecutive failures that opens the breaker.
	Threshold int

	// OpenFor is how long the breaker stays open before probing.
	OpenFor time.Duration
}

// DefaultBreakerConfig returns a configuration with sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Threshold: 5, OpenFor: 30 * time.Second}
}

// NewGuardedCache wraps inner.
func NewGuardedCache(inner cache.Cache, cfg BreakerConfig) *GuardedCache {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultBreakerConfig().Threshold
	}
	if cfg.OpenFor <= 0 {
		cfg.OpenFor = DefaultBreakerConfig().OpenFor
	}

	return &GuardedCache{
		inner: inner,
		breaker: circuitbreaker.New[[]byte](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    cfg.OpenFor,
			Timeout:     cfg.OpenFor,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- threshold is positive
			},
		}),
	}
}

func (g *GuardedCache) call(ctx context.Context, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	entered := false
	out, err := g.breaker.Execute(ctx, func(ctx context.Context) ([]byte, error) {
		entered = true
		return fn(ctx)
	})
	if err != nil && !entered {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return out, err
}

var found = []byte{1}

// Get retrieves a value. A miss is not a failure.
func (g *GuardedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var ok bool
	out, err := g.call(ctx, func(ctx context.Context) ([]byte, error) {
		v, hit, err := g.inner.Get(ctx, key)
		ok = hit
		return v, err
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

// Set stores a value.
func (g *GuardedCache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	_, err := g.call(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, g.inner.Set(ctx, key, value, opts)
	})
	return err
}

// Delete removes a value.
func (g *GuardedCache) Delete(ctx context.Context, key string) error {
	_, err := g.call(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, g.inner.Delete(ctx, key)
	})
	return err
}

// Exists checks for a key.
func (g *GuardedCache) Exists(ctx context.Context, key string) (bool, error) {
	out, err := g.call(ctx, func(ctx context.Context) ([]byte, error) {
		ok, err := g.inner.Exists(ctx, key)
		if ok {
			return found, err
		}
		return nil, err
	})
	return out != nil, err
}

// Clear removes all entries.
func (g *GuardedCache) Clear(ctx context.Context) error {
	_, err := g.call(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, g.inner.Clear(ctx)
	})
	return err
}

// Stats forwards to the backend when it reports statistics.
func (g *GuardedCache) Stats() cache.Stats {
	if sp, ok := g.inner.(cache.StatsProvider); ok {
		return sp.Stats()
	}
	return cache.Stats{}
}

// State returns the breaker state.
func (g *GuardedCache) State() circuitbreaker.State {
	return g.breaker.State()
}

var (
	_ cache.Cache         = (*GuardedCache)(nil)
	_ cache.StatsProvider = (*GuardedCache)(nil)
)
