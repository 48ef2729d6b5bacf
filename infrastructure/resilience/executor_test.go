package resilience

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/memory"
)

func execCtx(h formula.Handler) *middleware.ExecutionContext {
	return &middleware.ExecutionContext{
		Formula: formula.NewBuilder("test").WithHandler(h).MustBuild(),
		Input:   json.RawMessage(`{}`),
	}
}

func okHandler(_ context.Context, _ json.RawMessage) (formula.Result, error) {
	return formula.OK(json.RawMessage(`{"v":1}`), nil), nil
}

func TestDefaultExecutorConfig(t *testing.T) {
	cfg := DefaultExecutorConfig()
	if cfg.MaxConcurrent != 64 {
		t.Errorf("MaxConcurrent = %d, want 64", cfg.MaxConcurrent)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout)
	}
}

func TestExecutor_Execute_Success(t *testing.T) {
	t.Parallel()

	e := NewExecutorWithOptions(WithMaxConcurrent(2))
	res, err := e.Execute(context.Background(), execCtx(okHandler), middleware.Evaluate)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsOK() || string(res.Outputs) != `{"v":1}` {
		t.Errorf("Execute() = %+v", res)
	}
	if res.Duration <= 0 {
		t.Error("Execute() should stamp Duration")
	}
}

func TestExecutor_Timeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context, _ json.RawMessage) (formula.Result, error) {
		select {
		case <-ctx.Done():
			return formula.Result{}, ctx.Err()
		case <-time.After(time.Second):
			return formula.OK(nil, nil), nil
		}
	}

	e := NewExecutorWithOptions(WithTimeout(20 * time.Millisecond))
	_, err := e.Execute(context.Background(), execCtx(slow), middleware.Evaluate)
	if !errors.Is(err, formula.ErrEvaluationTimeout) {
		t.Errorf("Execute() error = %v, want ErrEvaluationTimeout", err)
	}
}

func TestExecutor_PropagatesErrors(t *testing.T) {
	t.Parallel()

	want := errors.New("bad")
	failing := func(context.Context, json.RawMessage) (formula.Result, error) {
		return formula.Result{}, want
	}

	_, err := NewExecutor(DefaultExecutorConfig()).Execute(context.Background(), execCtx(failing), middleware.Evaluate)
	if !errors.Is(err, want) {
		t.Errorf("Execute() error = %v, want %v", err, want)
	}
}

func TestExecutor_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	h := func(context.Context, json.RawMessage) (formula.Result, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		return formula.OK(nil, nil), nil
	}

	e := NewExecutorWithOptions(WithMaxConcurrent(2), WithTimeout(0))
	m := e.Middleware()(middleware.Evaluate)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m(context.Background(), execCtx(h))
		}()
	}
	wg.Wait()

	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

type failingCache struct {
	calls atomic.Int32
}

func (f *failingCache) Get(context.Context, string) ([]byte, bool, error) {
	f.calls.Add(1)
	return nil, false, cache.ErrConnectionFailed
}
func (f *failingCache) Set(context.Context, string, []byte, cache.SetOptions) error {
	f.calls.Add(1)
	return cache.ErrConnectionFailed
}
func (f *failingCache) Delete(context.Context, string) error         { return nil }
func (f *failingCache) Exists(context.Context, string) (bool, error) { return false, nil }
func (f *failingCache) Clear(context.Context) error                 { return nil }

func TestGuardedCache_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	inner := &failingCache{}
	g := NewGuardedCache(inner, BreakerConfig{Threshold: 3, OpenFor: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := g.Get(ctx, "k"); !errors.Is(err, cache.ErrConnectionFailed) {
			t.Fatalf("call %d error = %v, want ErrConnectionFailed", i, err)
		}
	}

	_, _, err := g.Get(ctx, "k")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error after threshold = %v, want ErrCircuitOpen", err)
	}
	if n := inner.calls.Load(); n != 3 {
		t.Errorf("backend called %d times, want 3", n)
	}
}

func TestGuardedCache_PassesThrough(t *testing.T) {
	t.Parallel()

	g := NewGuardedCache(memory.NewCache(), DefaultBreakerConfig())
	ctx := context.Background()

	if _, ok, err := g.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("miss = %v, %v", ok, err)
	}
	if err := g.Set(ctx, "k", []byte("v"), cache.SetOptions{}); err != nil {
		t.Fatal(err)
	}
	v, ok, err := g.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}
	if ok, _ := g.Exists(ctx, "k"); !ok {
		t.Error("Exists = false")
	}
	if st := g.Stats(); st.Hits != 1 {
		t.Errorf("Stats = %+v", st)
	}
	if err := g.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := g.Exists(ctx, "k"); ok {
		t.Error("Exists after Delete = true")
	}
}
