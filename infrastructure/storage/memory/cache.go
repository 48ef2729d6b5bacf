package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
)

type cacheEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is an in-memory cache.Cache with TTL expiry and LRU eviction.
// The front of the list is the most recently used entry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	hits   int64
	misses int64
}

// CacheOption configures the cache.
type CacheOption func(*Cache)

// WithMaxSize sets the maximum number of entries. Zero means unbounded.
func WithMaxSize(size int) CacheOption {
	return func(c *Cache) { c.maxSize = size }
}

// WithDefaultTTL applies ttl when Set is called without one.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a new in-memory cache holding at most 1000 entries.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: 1000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a copy of the value stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	e := el.Value.(*cacheEntry)
	if e.expired(c.now()) {
		c.remove(el)
		c.misses++
		return nil, false, nil
	}

	c.order.MoveToFront(el)
	c.hits++
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value, evicting the least recently used entry at capacity.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return cache.ErrInvalidKey
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = c.ttl
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*cacheEntry)
		e.value = append([]byte(nil), value...)
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return nil
	}

	if c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}

	e := &cacheEntry{key: key, value: append([]byte(nil), value...), expiresAt: expiresAt}
	c.entries[key] = c.order.PushFront(e)
	return nil
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

// Exists reports whether key holds an unexpired value without touching recency.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return !el.Value.(*cacheEntry).expired(c.now()), nil
}

// Clear removes all entries from the cache.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// Stats returns cache statistics.
func (c *Cache) Stats() cache.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cache.Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    int64(c.order.Len()),
		MaxSize: int64(c.maxSize),
	}
}

// Cleanup removes expired entries and returns how many were dropped.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*cacheEntry).expired(now) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove must be called with the lock held.
func (c *Cache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
