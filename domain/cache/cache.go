// Package cache provides the domain interface for formula result caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache stores encoded formula results by key.
// Implementations may be in-memory, Redis, Badger or SQLite.
type Cache interface {
	// Get retrieves a cached value by key.
	// Returns the value, whether it was found, and any error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given key and options.
	Set(ctx context.Context, key string, value []byte, opts SetOptions) error

	// Delete removes a cached entry by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in the cache.
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error
}

// SetOptions configures how a value is stored in the cache.
type SetOptions struct {
	// TTL is the time-to-live for the cached entry.
	// Zero means no expiration.
	TTL time.Duration
}

// Stats provides cache statistics.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Size    int64 `json:"size"`
	MaxSize int64 `json:"max_size"`
}

// StatsProvider is an optional interface for caches that support statistics.
type StatsProvider interface {
	Stats() Stats
}

// Key derives the cache key of a formula evaluation. Inputs that differ only
// in whitespace or object key order share a key.
func Key(formula string, input []byte) string {
	h := sha256.New()
	h.Write([]byte(formula))
	h.Write([]byte{0})
	h.Write(canonical(input))
	return "calc:" + formula + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}

func canonical(input []byte) []byte {
	var v any
	if err := json.Unmarshal(input, &v); err != nil {
		return input
	}
	out, err := json.Marshal(v)
	if err != nil {
		return input
	}
	return out
}
