package config

import (
	"encoding/json"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

// durationPattern matches Go duration strings such as "1h", "250ms" or "1m30s".
const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// GenerateSchema generates a JSON Schema for the calc configuration file.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/felixgeelhaar/calc-go/calc-config.schema.json",
		Title:       "Calc Configuration",
		Description: "Configuration schema for the calc engine and its surfaces",
		Type:        "object",
		Properties: map[string]*JSONSchema{
			"logging":   object("Log output settings", props{"level": enum("Minimum log level", "info", "trace", "debug", "info", "warn", "error"), "format": enum("Log encoding", "console", "console", "json")}),
			"format":    generateFormatSchema(),
			"packs":     object("Formula pack selection", props{"enabled": stringList("Packs to install; empty installs all"), "disabled": stringList("Packs to skip")}),
			"cache":     generateCacheSchema(),
			"server":    generateServerSchema(),
			"jobs":      generateJobsSchema(),
			"telemetry": generateTelemetrySchema(),
		},
	}
}

type props map[string]*JSONSchema

func object(desc string, p props) *JSONSchema {
	closed := false
	return &JSONSchema{Type: "object", Description: desc, Properties: p, AdditionalProperties: &closed}
}

func enum(desc string, def string, values ...string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: desc, Enum: values, Default: def}
}

func stringList(desc string) *JSONSchema {
	return &JSONSchema{Type: "array", Description: desc, Items: &JSONSchema{Type: "string"}}
}

func duration(desc, def string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: desc, Pattern: durationPattern, Default: def}
}

func integer(desc string, def int, min float64) *JSONSchema {
	return &JSONSchema{Type: "integer", Description: desc, Default: def, Minimum: floatPtr(min)}
}

func text(desc string, def string) *JSONSchema {
	s := &JSONSchema{Type: "string", Description: desc}
	if def != "" {
		s.Default = def
	}
	return s
}

func generateFormatSchema() *JSONSchema {
	decimals := integer("Fraction digits for rendered numbers", 2, 0)
	decimals.Maximum = floatPtr(10)
	return object("Summary rendering", props{
		"locale":   text("BCP 47 locale tag", "en-US"),
		"currency": {Type: "string", Description: "ISO 4217 currency code", Pattern: "^[A-Za-z]{3}$", Default: "USD"},
		"decimals": decimals,
	})
}

func generateCacheSchema() *JSONSchema {
	return object("Result cache", props{
		"backend":           enum("Cache backend", "memory", "none", "memory", "redis", "badger", "sqlite"),
		"ttl":               duration("Entry lifetime", "1h"),
		"max_entries":       integer("Maximum entries held by the memory backend", 10000, 0),
		"breaker_threshold": integer("Consecutive backend failures before the breaker opens", 5, 1),
		"redis": object("Redis backend", props{
			"addr":       text("host:port", "localhost:6379"),
			"password":   text("Password", ""),
			"db":         integer("Database index", 0, 0),
			"key_prefix": text("Key prefix", "calc:"),
		}),
		"badger": object("Badger backend", props{"path": text("Data directory; empty runs in memory", "")}),
		"sqlite": object("SQLite backend", props{"path": text("Database file", "calc-cache.db")}),
	})
}

func generateServerSchema() *JSONSchema {
	return object("HTTP server", props{
		"address":        text("Listen address", ":8080"),
		"read_timeout":   duration("Request read timeout", "10s"),
		"write_timeout":  duration("Response write timeout", "10s"),
		"max_concurrent": integer("Concurrent evaluations", 64, 1),
		"eval_timeout":   duration("Per-evaluation timeout", "2s"),
	})
}

func generateJobsSchema() *JSONSchema {
	step := integer("Progress added per tick", 10, 1)
	step.Maximum = floatPtr(100)
	return object("Simulated PDF jobs", props{
		"tick_interval": duration("Progress tick interval", "200ms"),
		"step_percent":  step,
		"max_file_size": integer("Largest accepted file in bytes", 50<<20, 1),
	})
}

func generateTelemetrySchema() *JSONSchema {
	rate := &JSONSchema{Type: "number", Description: "Trace sampling ratio", Default: 1.0, Minimum: floatPtr(0), Maximum: floatPtr(1)}
	return object("OpenTelemetry export", props{
		"enabled":      {Type: "boolean", Description: "Enable tracing and metrics", Default: false},
		"exporter":     enum("Span exporter", "none", "none", "stdout", "otlp"),
		"endpoint":     text("OTLP gRPC endpoint", ""),
		"service_name": text("Service name resource attribute", "calc"),
		"environment":  text("Deployment environment", "development"),
		"sample_rate":  rate,
	})
}

func floatPtr(f float64) *float64 {
	return &f
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
