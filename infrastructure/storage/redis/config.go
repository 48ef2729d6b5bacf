// Package redis provides a Redis-backed result cache.
package redis

import (
	"time"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

// Config holds Redis connection configuration.
type Config struct {
	// Address is the Redis server address (host:port).
	Address string

	// Password for authentication (optional).
	Password string

	// DB selects the Redis database index.
	DB int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// KeyPrefix is prepended to all keys.
	KeyPrefix string

	// ConnectAttempts bounds the startup ping retries.
	ConnectAttempts int

	// ConnectBackoff is the delay before the first retry.
	ConnectBackoff time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:         "localhost:6379",
		DialTimeout:     2 * time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		PoolSize:        10,
		KeyPrefix:       "calc:",
		ConnectAttempts: 3,
		ConnectBackoff:  200 * time.Millisecond,
	}
}

// FromSettings maps the cache.redis section onto a Config.
func FromSettings(s domainconfig.RedisConfig) Config {
	cfg := DefaultConfig()
	if s.Addr != "" {
		cfg.Address = s.Addr
	}
	cfg.Password = s.Password
	cfg.DB = s.DB
	if s.KeyPrefix != "" {
		cfg.KeyPrefix = s.KeyPrefix
	}
	return cfg
}

// ConfigOption configures the Redis connection.
type ConfigOption func(*Config)

// WithAddress sets the Redis server address.
func WithAddress(addr string) ConfigOption {
	return func(c *Config) { c.Address = addr }
}

// WithKeyPrefix sets the key prefix for namespacing.
func WithKeyPrefix(prefix string) ConfigOption {
	return func(c *Config) { c.KeyPrefix = prefix }
}

// WithConnectRetry sets the startup retry policy.
func WithConnectRetry(attempts int, backoff time.Duration) ConfigOption {
	return func(c *Config) {
		c.ConnectAttempts = attempts
		c.ConnectBackoff = backoff
	}
}

// WithTimeouts sets connection timeouts.
func WithTimeouts(dial, read, write time.Duration) ConfigOption {
	return func(c *Config) {
		c.DialTimeout = dial
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}
