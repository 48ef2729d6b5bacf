package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/calc-go/domain/cache"
)

// Cache is a Redis-backed implementation of cache.Cache.
type Cache struct {
	client    *redis.Client
	keyPrefix string
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewCache connects to Redis, retrying the initial ping with exponential
// backoff before giving up with cache.ErrConnectionFailed.
func NewCache(ctx context.Context, cfg Config, opts ...ConfigOption) (*Cache, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	r := retry.New[struct{}](retry.Config{
		MaxAttempts:   attempts,
		InitialDelay:  cfg.ConnectBackoff,
		BackoffPolicy: retry.BackoffExponential,
		Multiplier:    2.0,
	})
	_, err := r.Do(ctx, func(ctx context.Context) (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		return struct{}{}, client.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Join(cache.ErrConnectionFailed, err)
	}

	return NewCacheFromClient(client, cfg.KeyPrefix), nil
}

// NewCacheFromClient wraps an existing client.
func NewCacheFromClient(client *redis.Client, keyPrefix string) *Cache {
	return &Cache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// prefixKey namespaces key under the configured prefix. Domain keys already
// start with "calc:", so the default prefix yields "calc:calc:<formula>:<hash>".
func (c *Cache) prefixKey(key string) string {
	return c.keyPrefix + key
}

// Get retrieves a value from the cache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	result, err := c.client.Get(ctx, c.prefixKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, wrapError(err)
	}

	c.hits.Add(1)
	return result, true, nil
}

// Set stores a value in the cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return cache.ErrInvalidKey
	}

	var expiration time.Duration
	if opts.TTL > 0 {
		expiration = opts.TTL
	}
	return wrapError(c.client.Set(ctx, c.prefixKey(key), value, expiration).Err())
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrapError(c.client.Del(ctx, c.prefixKey(key)).Err())
}

// Exists checks if a key exists in the cache.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	n, err := c.client.Exists(ctx, c.prefixKey(key)).Result()
	if err != nil {
		return false, wrapError(err)
	}
	return n > 0, nil
}

// Clear removes all entries under the prefix using SCAN in batches of 100.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return wrapError(err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return wrapError(err)
	}
	if len(keys) > 0 {
		return wrapError(c.client.Del(ctx, keys...).Err())
	}
	return nil
}

// Stats returns hit and miss counters. Size is not tracked for Redis.
func (c *Cache) Stats() cache.Stats {
	return cache.Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return wrapError(c.client.Ping(ctx).Err())
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(cache.ErrOperationTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(cache.ErrOperationTimeout, err)
	}
	return errors.Join(cache.ErrConnectionFailed, err)
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
