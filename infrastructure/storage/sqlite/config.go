// Package sqlite provides a SQLite-backed result cache.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

// Config configures SQLite storage.
type Config struct {
	// DSN is the data source name, e.g. "file:calc.db?mode=rwc".
	DSN string

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int

	// ConnMaxIdleTime is the maximum idle time for connections.
	ConnMaxIdleTime time.Duration

	// JournalMode sets the SQLite journal mode, e.g. "WAL".
	JournalMode string

	// BusyTimeout sets the busy timeout in milliseconds.
	BusyTimeout int
}

// Option configures SQLite storage.
type Option func(*Config)

// WithDSN sets the data source name.
func WithDSN(dsn string) Option {
	return func(c *Config) { c.DSN = dsn }
}

// WithJournalMode sets the SQLite journal mode.
func WithJournalMode(mode string) Option {
	return func(c *Config) { c.JournalMode = mode }
}

// DefaultConfig returns the defaults used by the calc binary.
func DefaultConfig() Config {
	return Config{
		DSN:             "file:calc-cache.db?mode=rwc",
		MaxOpenConns:    4,
		ConnMaxIdleTime: 10 * time.Minute,
		JournalMode:     "WAL",
		BusyTimeout:     5000,
	}
}

// FromSettings maps the cache.sqlite section onto a Config.
func FromSettings(s domainconfig.SQLiteConfig) Config {
	cfg := DefaultConfig()
	if s.Path != "" {
		cfg.DSN = "file:" + s.Path + "?mode=rwc"
	}
	return cfg
}

// Errors
var (
	ErrConnectionFailed = errors.New("sqlite: connection failed")
	ErrMigrationFailed  = errors.New("sqlite: migration failed")
)

func openDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	var pragmas []string
	if cfg.JournalMode != "" {
		pragmas = append(pragmas, "PRAGMA journal_mode="+cfg.JournalMode)
	}
	if cfg.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout))
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Join(ErrMigrationFailed, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return db, nil
}
