package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewCache()

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte("v"), cache.SetOptions{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	// Returned slices are copies.
	got[0] = 'x'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "v" {
		t.Errorf("stored value mutated to %q", again)
	}

	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestCache_InvalidKey(t *testing.T) {
	t.Parallel()
	err := NewCache().Set(context.Background(), "", []byte("v"), cache.SetOptions{})
	if !errors.Is(err, cache.ErrInvalidKey) {
		t.Errorf("Set(\"\") error = %v, want ErrInvalidKey", err)
	}
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewCache(WithClock(clock.Now), WithDefaultTTL(time.Minute))

	_ = c.Set(ctx, "default", []byte("1"), cache.SetOptions{})
	_ = c.Set(ctx, "explicit", []byte("2"), cache.SetOptions{TTL: time.Hour})

	clock.Advance(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, "default"); ok {
		t.Error("entry using default TTL should have expired")
	}
	if ok, _ := c.Exists(ctx, "explicit"); !ok {
		t.Error("entry with explicit TTL should still exist")
	}

	clock.Advance(time.Hour)
	if n := c.Cleanup(); n != 1 {
		t.Errorf("Cleanup() = %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

func TestCache_LRUEviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewCache(WithMaxSize(2))

	_ = c.Set(ctx, "a", []byte("1"), cache.SetOptions{})
	_ = c.Set(ctx, "b", []byte("2"), cache.SetOptions{})
	_, _, _ = c.Get(ctx, "a") // a is now most recent
	_ = c.Set(ctx, "c", []byte("3"), cache.SetOptions{})

	if ok, _ := c.Exists(ctx, "b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if ok, _ := c.Exists(ctx, k); !ok {
			t.Errorf("%s should be present", k)
		}
	}

	// Overwriting an existing key does not evict.
	_ = c.Set(ctx, "a", []byte("9"), cache.SetOptions{})
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestCache_DeleteClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewCache()

	_ = c.Set(ctx, "a", []byte("1"), cache.SetOptions{})
	_ = c.Set(ctx, "b", []byte("2"), cache.SetOptions{})
	_ = c.Delete(ctx, "a")
	_ = c.Delete(ctx, "missing")
	if c.Size() != 1 {
		t.Errorf("Size() after Delete = %d, want 1", c.Size())
	}
	_ = c.Clear(ctx)
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestCache_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCache()
	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v", err)
	}
	if err := c.Set(ctx, "k", nil, cache.SetOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v", err)
	}
}
