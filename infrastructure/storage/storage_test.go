package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	domaincache "github.com/felixgeelhaar/calc-go/domain/cache"
	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/memory"
)

func TestOpenCache_None(t *testing.T) {
	t.Parallel()

	c, closeFn, err := storage.OpenCache(context.Background(), domainconfig.CacheConfig{Backend: domainconfig.CacheNone})
	if err != nil {
		t.Fatal(err)
	}
	if c != nil {
		t.Errorf("none backend returned %T", c)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestOpenCache_Memory(t *testing.T) {
	t.Parallel()

	cfg := domainconfig.CacheConfig{Backend: domainconfig.CacheMemory, MaxEntries: 2, TTL: domainconfig.Duration(time.Minute)}
	c, _, err := storage.OpenCache(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*memory.Cache); !ok {
		t.Fatalf("memory backend returned %T", c)
	}
	roundTrip(t, c)
}

func TestOpenCache_Badger(t *testing.T) {
	t.Parallel()

	c, closeFn, err := storage.OpenCache(context.Background(), domainconfig.CacheConfig{Backend: domainconfig.CacheBadger})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closeFn() }()

	if _, ok := c.(*resilience.GuardedCache); !ok {
		t.Fatalf("badger backend returned %T, want guarded", c)
	}
	roundTrip(t, c)
}

func TestOpenCache_SQLite(t *testing.T) {
	t.Parallel()

	cfg := domainconfig.CacheConfig{
		Backend: domainconfig.CacheSQLite,
		SQLite:  domainconfig.SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache.db")},
	}
	c, closeFn, err := storage.OpenCache(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closeFn() }()
	roundTrip(t, c)
}

func TestOpenCache_Unknown(t *testing.T) {
	t.Parallel()

	_, _, err := storage.OpenCache(context.Background(), domainconfig.CacheConfig{Backend: "memcached"})
	if !errors.Is(err, storage.ErrUnknownBackend) {
		t.Errorf("error = %v, want ErrUnknownBackend", err)
	}
}

func roundTrip(t *testing.T, c domaincache.Cache) {
	t.Helper()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), domaincache.SetOptions{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get() = %q, %v, %v", got, ok, err)
	}
}
