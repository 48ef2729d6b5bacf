package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/calc-go/domain/config"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives a freshly loaded configuration.
type ReloadFunc func(*config.Config)

// ErrorFunc receives reload failures. The previous configuration stays in effect.
type ErrorFunc func(error)

// Watcher reloads a configuration file when it changes on disk.
type Watcher struct {
	path     string
	loader   *Loader
	debounce time.Duration

	mu      sync.RWMutex
	current *config.Config
	subs    []ReloadFunc
	onError ErrorFunc
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithErrorHandler sets the reload failure callback.
func WithErrorHandler(fn ErrorFunc) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// NewWatcher loads path once and returns a watcher seeded with the result.
func NewWatcher(path string, loader *Loader, opts ...WatcherOption) (*Watcher, error) {
	if loader == nil {
		loader = NewLoader()
	}
	cfg, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     path,
		loader:   loader,
		debounce: DefaultDebounce,
		current:  cfg,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe registers fn to be called after every successful reload.
func (w *Watcher) Subscribe(fn ReloadFunc) {
	w.mu.Lock()
	w.subs = append(w.subs, fn)
	w.mu.Unlock()
}

// Reload loads the file again and notifies subscribers on success.
func (w *Watcher) Reload() error {
	cfg, err := w.loader.LoadFile(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.current = cfg
	subs := append([]ReloadFunc(nil), w.subs...)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
	return nil
}

// Run watches the file's directory until ctx is done. Directories are
// watched instead of the file so atomic rename-on-save keeps working.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				w.reportError(err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.RLock()
	fn := w.onError
	w.mu.RUnlock()
	if fn != nil {
		fn(err)
	}
}
