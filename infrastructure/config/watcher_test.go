package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/config"
)

func TestWatcher_Reload(t *testing.T) {
	path := writeFile(t, "calc.yaml", "logging:\n  level: info\n")
	w, err := NewWatcher(path, NewLoader(WithLookup(envMap(nil))))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.Current().Logging.Level != "info" {
		t.Fatalf("initial level = %s", w.Current().Logging.Level)
	}

	var got *config.Config
	w.Subscribe(func(c *config.Config) { got = c })

	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got == nil || got.Logging.Level != "debug" {
		t.Errorf("subscriber got %+v", got)
	}
	if w.Current().Logging.Level != "debug" {
		t.Errorf("Current().Logging.Level = %s", w.Current().Logging.Level)
	}
}

func TestWatcher_ReloadKeepsPreviousOnError(t *testing.T) {
	path := writeFile(t, "calc.yaml", "logging:\n  level: info\n")
	w, err := NewWatcher(path, NewLoader(WithLookup(envMap(nil))))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Reload(); !errors.Is(err, config.ErrValidationFailed) {
		t.Fatalf("Reload() error = %v, want ErrValidationFailed", err)
	}
	if w.Current().Logging.Level != "info" {
		t.Errorf("Current().Logging.Level = %s, want info", w.Current().Logging.Level)
	}
}

func TestWatcher_RunPicksUpChanges(t *testing.T) {
	path := writeFile(t, "calc.yaml", "format:\n  decimals: 2\n")
	w, err := NewWatcher(path, NewLoader(WithLookup(envMap(nil))), WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	reloaded := make(chan int, 4)
	w.Subscribe(func(c *config.Config) {
		select {
		case reloaded <- c.Format.Decimals:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("format:\n  decimals: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case d := <-reloaded:
			seen = d == 5
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
