package config

import (
	"errors"
	"strings"
	"testing"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

func TestEnvExpander_Expand(t *testing.T) {
	env := envMap(map[string]string{
		"HOST":  "example.org",
		"EMPTY": "",
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bracket syntax", "${HOST}", "example.org"},
		{"dollar syntax", "$HOST", "example.org"},
		{"embedded in text", "http://${HOST}:80", "http://example.org:80"},
		{"multiple variables", "${HOST} $HOST", "example.org example.org"},
		{"default when unset", "${PORT:-8080}", "8080"},
		{"default when empty", "${EMPTY:-fallback}", "fallback"},
		{"default ignored when set", "${HOST:-other}", "example.org"},
		{"unset lenient", "x${MISSING}y", "xy"},
		{"no variables", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &envExpander{lookup: env}
			got, err := e.Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnvExpander_Required(t *testing.T) {
	e := &envExpander{lookup: envMap(nil)}
	_, err := e.Expand("${TOKEN:?token must be set}")
	if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Fatalf("error = %v, want ErrMissingEnvVar", err)
	}
	if !strings.Contains(err.Error(), "token must be set") {
		t.Errorf("error %q should carry the message", err)
	}
}

func TestEnvExpander_Strict(t *testing.T) {
	e := &envExpander{strict: true, lookup: envMap(nil)}
	_, err := e.Expand("${A} $B")
	if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Fatalf("error = %v, want ErrMissingEnvVar", err)
	}
	if !strings.Contains(err.Error(), "A") || !strings.Contains(err.Error(), "B") {
		t.Errorf("error %q should list both names", err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CALC_TEST_EXPAND", "on")
	if got := ExpandEnv("mode=${CALC_TEST_EXPAND}"); got != "mode=on" {
		t.Errorf("ExpandEnv() = %q", got)
	}
}
