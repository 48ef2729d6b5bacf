// Package config provides domain models for calc configuration.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	// Format sets locale, currency and precision of summaries.
	Format FormatConfig `json:"format" yaml:"format"`
	// Packs selects which formula packs are installed.
	Packs PacksConfig `json:"packs,omitempty" yaml:"packs,omitempty"`
	// Cache configures the result cache.
	Cache CacheConfig `json:"cache" yaml:"cache"`
	// Server configures the HTTP surface.
	Server ServerConfig `json:"server" yaml:"server"`
	// Jobs configures simulated file jobs.
	Jobs JobsConfig `json:"jobs" yaml:"jobs"`
	// Telemetry configures tracing export.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is json or console.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// FormatConfig configures number and money rendering.
type FormatConfig struct {
	Locale   string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Decimals int    `json:"decimals,omitempty" yaml:"decimals,omitempty"`
}

// PacksConfig selects packs. An empty Enabled list installs every pack.
type PacksConfig struct {
	Enabled  []string `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Disabled []string `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheBadger = "badger"
	CacheSQLite = "sqlite"
)

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Backend is none, memory, redis, badger or sqlite.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// TTL is how long a result stays cached. Zero keeps it until evicted.
	TTL Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// MaxEntries bounds the memory backend.
	MaxEntries int `json:"max_entries,omitempty" yaml:"max_entries,omitempty"`
	// Redis configures the redis backend.
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
	// Badger configures the badger backend.
	Badger BadgerConfig `json:"badger,omitempty" yaml:"badger,omitempty"`
	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
	// BreakerThreshold is the consecutive backend failures that open the
	// circuit around a remote cache.
	BreakerThreshold int `json:"breaker_threshold,omitempty" yaml:"breaker_threshold,omitempty"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr      string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	DB        int    `json:"db,omitempty" yaml:"db,omitempty"`
	KeyPrefix string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`
}

// BadgerConfig configures the badger cache backend.
type BadgerConfig struct {
	// Path is the data directory. Empty runs in memory.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// SQLiteConfig configures the sqlite cache backend.
type SQLiteConfig struct {
	// Path is the database file. ":memory:" is allowed.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address      string   `json:"address,omitempty" yaml:"address,omitempty"`
	ReadTimeout  Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
	// MaxConcurrent bounds concurrent evaluations.
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
	// EvalTimeout bounds one evaluation.
	EvalTimeout Duration `json:"eval_timeout,omitempty" yaml:"eval_timeout,omitempty"`
}

// JobsConfig configures simulated file jobs.
type JobsConfig struct {
	// TickInterval is the delay between progress steps.
	TickInterval Duration `json:"tick_interval,omitempty" yaml:"tick_interval,omitempty"`
	// StepPercent is the progress added per tick.
	StepPercent int `json:"step_percent,omitempty" yaml:"step_percent,omitempty"`
	// MaxFileSize is the per-file limit in bytes.
	MaxFileSize int64 `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty"`
}

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	Enabled     bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Exporter    string  `json:"exporter,omitempty" yaml:"exporter,omitempty"`
	Endpoint    string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ServiceName string  `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	Environment string  `json:"environment,omitempty" yaml:"environment,omitempty"`
	SampleRate  float64 `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Format:  FormatConfig{Locale: "en-US", Currency: "USD", Decimals: 2},
		Cache: CacheConfig{
			Backend:          CacheMemory,
			TTL:              Duration(time.Hour),
			MaxEntries:       10000,
			Redis:            RedisConfig{Addr: "localhost:6379", KeyPrefix: "calc:"},
			SQLite:           SQLiteConfig{Path: "calc-cache.db"},
			BreakerThreshold: 5,
		},
		Server: ServerConfig{
			Address:       ":8080",
			ReadTimeout:   Duration(10 * time.Second),
			WriteTimeout:  Duration(10 * time.Second),
			MaxConcurrent: 64,
			EvalTimeout:   Duration(2 * time.Second),
		},
		Jobs: JobsConfig{
			TickInterval: Duration(200 * time.Millisecond),
			StepPercent:  10,
			MaxFileSize:  50 << 20,
		},
		Telemetry: TelemetryConfig{
			Exporter:    "none",
			ServiceName: "calc",
			Environment: "development",
			SampleRate:  1,
		},
	}
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
