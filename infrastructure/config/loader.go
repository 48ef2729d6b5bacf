// Package config loads calc configuration from YAML or JSON files,
// expands environment references, applies CALC_* overrides and watches
// the file for changes.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/calc-go/domain/config"
)

// Loader loads configuration from files.
type Loader struct {
	// ExpandEnv enables ${VAR} expansion inside the document.
	ExpandEnv bool
	// StrictEnv fails if referenced env vars are missing.
	StrictEnv bool
	// Overrides applies CALC_* environment overrides after parsing.
	Overrides bool
	// Validate enables configuration validation.
	Validate bool
	// lookup resolves environment variables; tests replace it.
	lookup func(string) (string, bool)
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) { l.ExpandEnv = enabled }
}

// WithStrictEnv enables strict environment variable checking.
func WithStrictEnv(enabled bool) LoaderOption {
	return func(l *Loader) { l.StrictEnv = enabled }
}

// WithOverrides enables or disables CALC_* overrides.
func WithOverrides(enabled bool) LoaderOption {
	return func(l *Loader) { l.Overrides = enabled }
}

// WithValidation enables or disables configuration validation.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) { l.Validate = enabled }
}

// WithLookup replaces the environment lookup.
func WithLookup(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookup = fn }
}

// NewLoader creates a loader with env expansion, overrides and validation on.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		ExpandEnv: true,
		Overrides: true,
		Validate:  true,
		lookup:    os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, ext)
	}
}

// LoadFile loads configuration from a file path. An empty path yields the
// defaults with overrides applied.
func (l *Loader) LoadFile(path string) (*config.Config, error) {
	if path == "" {
		return l.finish(config.Default())
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", config.ErrInvalidFormat, path)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return l.Load(f, format)
}

// Load loads configuration from a reader on top of the defaults.
func (l *Loader) Load(r io.Reader, format Format) (*config.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if l.ExpandEnv {
		exp := &envExpander{strict: l.StrictEnv, lookup: l.lookup}
		expanded, err := exp.Expand(string(data))
		if err != nil {
			return nil, err
		}
		data = []byte(expanded)
	}

	cfg := config.Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, format)
	}

	return l.finish(cfg)
}

// LoadString loads configuration from a string.
func (l *Loader) LoadString(content string, format Format) (*config.Config, error) {
	return l.Load(strings.NewReader(content), format)
}

func (l *Loader) finish(cfg config.Config) (*config.Config, error) {
	if l.Overrides {
		if err := l.applyOverrides(&cfg); err != nil {
			return nil, err
		}
	}
	if l.Validate {
		if errs := config.NewValidator().Validate(&cfg); errs.HasErrors() {
			return nil, fmt.Errorf("%w: %v", config.ErrValidationFailed, errs)
		}
	}
	return &cfg, nil
}

// applyOverrides reads CALC_* variables. Names follow the YAML path, for
// example CALC_CACHE_BACKEND or CALC_SERVER_ADDRESS.
func (l *Loader) applyOverrides(cfg *config.Config) error {
	str := func(name string, dst *string) {
		if v, ok := l.lookup(name); ok && v != "" {
			*dst = v
		}
	}
	var errs []string
	num := func(name string, dst *int) {
		if v, ok := l.lookup(name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, name)
				return
			}
			*dst = n
		}
	}
	dur := func(name string, dst *config.Duration) {
		if v, ok := l.lookup(name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, name)
				return
			}
			*dst = config.Duration(d)
		}
	}

	str("CALC_LOG_LEVEL", &cfg.Logging.Level)
	str("CALC_LOG_FORMAT", &cfg.Logging.Format)
	str("CALC_LOCALE", &cfg.Format.Locale)
	str("CALC_CURRENCY", &cfg.Format.Currency)
	num("CALC_DECIMALS", &cfg.Format.Decimals)
	str("CALC_CACHE_BACKEND", &cfg.Cache.Backend)
	dur("CALC_CACHE_TTL", &cfg.Cache.TTL)
	str("CALC_REDIS_ADDR", &cfg.Cache.Redis.Addr)
	str("CALC_REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	str("CALC_BADGER_PATH", &cfg.Cache.Badger.Path)
	str("CALC_SQLITE_PATH", &cfg.Cache.SQLite.Path)
	str("CALC_SERVER_ADDRESS", &cfg.Server.Address)
	num("CALC_SERVER_MAX_CONCURRENT", &cfg.Server.MaxConcurrent)
	dur("CALC_JOBS_TICK_INTERVAL", &cfg.Jobs.TickInterval)
	str("CALC_TELEMETRY_EXPORTER", &cfg.Telemetry.Exporter)
	str("CALC_TELEMETRY_ENDPOINT", &cfg.Telemetry.Endpoint)
	if v, ok := l.lookup("CALC_TELEMETRY_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, "CALC_TELEMETRY_ENABLED")
		} else {
			cfg.Telemetry.Enabled = b
		}
	}
	if v, ok := l.lookup("CALC_PACKS"); ok && v != "" {
		cfg.Packs.Enabled = splitList(v)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: malformed override %s", config.ErrInvalidFormat, strings.Join(errs, ", "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
