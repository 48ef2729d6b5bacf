// Package badger provides a BadgerDB-backed result cache.
package badger

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

// Config configures BadgerDB storage.
type Config struct {
	// Dir is the data directory. Empty runs in memory.
	Dir string

	// InMemory forces in-memory storage.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// ValueLogFileSize sets the size of value log files in bytes.
	ValueLogFileSize int64

	// GCDiscardRatio is the discard ratio for value log GC.
	GCDiscardRatio float64

	// GCInterval is the interval between GC runs. Zero disables GC.
	GCInterval time.Duration

	// KeyPrefix namespaces every key.
	KeyPrefix string
}

// Option configures BadgerDB storage.
type Option func(*Config)

// WithDir sets the data directory.
func WithDir(dir string) Option {
	return func(c *Config) { c.Dir = dir }
}

// WithInMemory enables in-memory storage.
func WithInMemory() Option {
	return func(c *Config) { c.InMemory = true }
}

// WithGCInterval sets the GC interval.
func WithGCInterval(d time.Duration) Option {
	return func(c *Config) { c.GCInterval = d }
}

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) { c.KeyPrefix = prefix }
}

// DefaultConfig returns the defaults used by the calc binary.
func DefaultConfig() Config {
	return Config{
		ValueLogFileSize: 1 << 26, // 64MB
		GCDiscardRatio:   0.5,
		GCInterval:       5 * time.Minute,
		KeyPrefix:        "results/",
	}
}

// FromSettings maps the cache.badger section onto a Config.
func FromSettings(s domainconfig.BadgerConfig) Config {
	cfg := DefaultConfig()
	cfg.Dir = s.Path
	cfg.InMemory = s.Path == ""
	return cfg
}

// ErrOpenFailed is returned when the database cannot be opened.
var ErrOpenFailed = errors.New("badger: open failed")

func openDB(cfg Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory || cfg.Dir == "" {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)
	if cfg.ValueLogFileSize > 0 {
		opts = opts.WithValueLogFileSize(cfg.ValueLogFileSize)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}
	return db, nil
}
