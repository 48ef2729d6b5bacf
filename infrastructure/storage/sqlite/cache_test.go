package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/sqlite"
)

func newTestCache(t *testing.T) *sqlite.Cache {
	t.Helper()
	cfg := sqlite.FromSettings(domainconfig.SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache.db")})
	c, err := sqlite.NewCache(cfg)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "calc:tip:1"); err != nil || ok {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Set(ctx, "calc:tip:1", []byte(`{"tip":15}`), cache.SetOptions{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// Upsert replaces the value.
	if err := c.Set(ctx, "calc:tip:1", []byte(`{"tip":18}`), cache.SetOptions{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "calc:tip:1")
	if err != nil || !ok || string(got) != `{"tip":18}` {
		t.Fatalf("Get = %s, %v, %v", got, ok, err)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestCache_InvalidKey(t *testing.T) {
	c := newTestCache(t)
	if err := c.Set(context.Background(), "", nil, cache.SetOptions{}); !errors.Is(err, cache.ErrInvalidKey) {
		t.Errorf("Set(\"\") error = %v, want ErrInvalidKey", err)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	c.SetClock(func() time.Time { return now })

	_ = c.Set(ctx, "short", []byte("1"), cache.SetOptions{TTL: time.Minute})
	_ = c.Set(ctx, "long", []byte("2"), cache.SetOptions{TTL: time.Hour})
	_ = c.Set(ctx, "forever", []byte("3"), cache.SetOptions{})

	now = now.Add(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("short should have expired")
	}
	if ok, _ := c.Exists(ctx, "long"); !ok {
		t.Error("long should exist")
	}

	now = now.Add(2 * time.Hour)
	n, err := c.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Cleanup removed %d rows, want 1", n)
	}
	if ok, _ := c.Exists(ctx, "forever"); !ok {
		t.Error("entry without TTL should survive cleanup")
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), cache.SetOptions{})
	_ = c.Set(ctx, "b", []byte("2"), cache.SetOptions{})

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := c.Exists(ctx, "a"); ok {
		t.Error("a should be gone")
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if st := c.Stats(); st.Size != 0 {
		t.Errorf("Size after Clear = %d", st.Size)
	}
}

func TestCache_CancelledContext(t *testing.T) {
	c := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := c.Get(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v", err)
	}
}
