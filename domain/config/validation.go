package config

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/calc-go/domain/format"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) ValidationErrors {
	v.errors = nil

	v.validateLogging(cfg)
	v.validateFormat(cfg)
	v.validateCache(cfg)
	v.validateServer(cfg)
	v.validateJobs(cfg)
	v.validateTelemetry(cfg)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func oneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (v *Validator) validateLogging(cfg *Config) {
	if l := strings.ToLower(cfg.Logging.Level); l != "" && !oneOf(l, "trace", "debug", "info", "warn", "error") {
		v.addError("logging.level", fmt.Sprintf("invalid level: %s", cfg.Logging.Level))
	}
	if f := cfg.Logging.Format; f != "" && !oneOf(f, "json", "console") {
		v.addError("logging.format", fmt.Sprintf("invalid format: %s", f))
	}
}

func (v *Validator) validateFormat(cfg *Config) {
	if _, err := format.New(cfg.Format.Locale, cfg.Format.Currency, cfg.Format.Decimals); err != nil {
		v.addError("format", err.Error())
	}
}

func (v *Validator) validateCache(cfg *Config) {
	c := cfg.Cache
	switch c.Backend {
	case "", CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			v.addError("cache.redis.addr", "addr is required for redis backend")
		}
	case CacheBadger:
	case CacheSQLite:
		if c.SQLite.Path == "" {
			v.addError("cache.sqlite.path", "path is required for sqlite backend")
		}
	default:
		v.addError("cache.backend", fmt.Sprintf("unknown backend: %s", c.Backend))
	}
	if c.TTL < 0 {
		v.addError("cache.ttl", "ttl must be non-negative")
	}
	if c.MaxEntries < 0 {
		v.addError("cache.max_entries", "max_entries must be non-negative")
	}
	if c.BreakerThreshold < 0 {
		v.addError("cache.breaker_threshold", "breaker_threshold must be non-negative")
	}
}

func (v *Validator) validateServer(cfg *Config) {
	if cfg.Server.MaxConcurrent < 0 {
		v.addError("server.max_concurrent", "max_concurrent must be non-negative")
	}
	if cfg.Server.EvalTimeout < 0 {
		v.addError("server.eval_timeout", "eval_timeout must be non-negative")
	}
}

func (v *Validator) validateJobs(cfg *Config) {
	if cfg.Jobs.TickInterval <= 0 {
		v.addError("jobs.tick_interval", "tick_interval must be positive")
	}
	if cfg.Jobs.StepPercent <= 0 || cfg.Jobs.StepPercent > 100 {
		v.addError("jobs.step_percent", "step_percent must be between 1 and 100")
	}
	if cfg.Jobs.MaxFileSize <= 0 {
		v.addError("jobs.max_file_size", "max_file_size must be positive")
	}
}

func (v *Validator) validateTelemetry(cfg *Config) {
	t := cfg.Telemetry
	if !t.Enabled {
		return
	}
	if !oneOf(t.Exporter, "none", "stdout", "otlp") {
		v.addError("telemetry.exporter", fmt.Sprintf("unknown exporter: %s", t.Exporter))
	}
	if t.Exporter == "otlp" && t.Endpoint == "" {
		v.addError("telemetry.endpoint", "endpoint is required for otlp exporter")
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		v.addError("telemetry.sample_rate", "sample_rate must be between 0 and 1")
	}
}
