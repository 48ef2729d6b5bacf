package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/felixgeelhaar/calc-go/domain/cache"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_expires_at ON results(expires_at);
`

// Cache is a SQLite-backed implementation of cache.Cache. Timestamps are
// stored as Unix milliseconds.
type Cache struct {
	db     *sql.DB
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache opens the database and creates the results table.
func NewCache(cfg Config, opts ...Option) (*Cache, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrMigrationFailed, err)
	}
	return &Cache{db: db, now: time.Now}, nil
}

// SetClock replaces time.Now for expiry decisions.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Get retrieves a value, deleting it if it has expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	var expiresAt sql.NullInt64
	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM results WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(cache.ErrConnectionFailed, err)
	}

	if expiresAt.Valid && expiresAt.Int64 <= c.now().UnixMilli() {
		_, _ = c.db.ExecContext(ctx, "DELETE FROM results WHERE key = ?", key)
		c.misses.Add(1)
		return nil, false, nil
	}

	c.hits.Add(1)
	return value, true, nil
}

// Set upserts a value.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return cache.ErrInvalidKey
	}

	now := c.now()
	var expiresAt sql.NullInt64
	if opts.TTL > 0 {
		expiresAt = sql.NullInt64{Int64: now.Add(opts.TTL).UnixMilli(), Valid: true}
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO results (key, value, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   expires_at = excluded.expires_at,
		   updated_at = excluded.updated_at`,
		key, value, expiresAt, now.UnixMilli(), now.UnixMilli(),
	)
	return err
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx, "DELETE FROM results WHERE key = ?", key)
	return err
}

// Exists checks if an unexpired value is stored under key.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var one int
	err := c.db.QueryRowContext(ctx,
		"SELECT 1 FROM results WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)",
		key, c.now().UnixMilli(),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes all entries.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx, "DELETE FROM results")
	return err
}

// Stats returns hit and miss counters plus the stored row count.
func (c *Cache) Stats() cache.Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var size int64
	_ = c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&size)

	return cache.Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}

// Cleanup removes expired rows and returns how many were deleted.
func (c *Cache) Cleanup(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res, err := c.db.ExecContext(ctx,
		"DELETE FROM results WHERE expires_at IS NOT NULL AND expires_at <= ?",
		c.now().UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
