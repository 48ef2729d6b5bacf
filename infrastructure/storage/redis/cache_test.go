package redis

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

func TestFromSettings(t *testing.T) {
	t.Parallel()

	cfg := FromSettings(domainconfig.RedisConfig{Addr: "cache:6380", DB: 2})
	if cfg.Address != "cache:6380" || cfg.DB != 2 {
		t.Errorf("FromSettings = %+v", cfg)
	}
	if cfg.KeyPrefix != "calc:" {
		t.Errorf("KeyPrefix = %s, want default calc:", cfg.KeyPrefix)
	}

	cfg = FromSettings(domainconfig.RedisConfig{})
	if cfg.Address != DefaultConfig().Address {
		t.Errorf("empty addr should keep default, got %s", cfg.Address)
	}
}

func TestCache_PrefixKey(t *testing.T) {
	t.Parallel()

	c := NewCacheFromClient(nil, "tenant:")
	if got := c.prefixKey("calc:bmi:abc"); got != "tenant:calc:bmi:abc" {
		t.Errorf("prefixKey = %s", got)
	}
}

func TestCache_CancelledContextSkipsNetwork(t *testing.T) {
	t.Parallel()

	c := NewCacheFromClient(nil, "calc:")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v", err)
	}
	if err := c.Set(ctx, "k", nil, cache.SetOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v", err)
	}
	if _, err := c.Exists(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Exists error = %v", err)
	}
}

func TestCache_SetRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	c := NewCacheFromClient(nil, "calc:")
	if err := c.Set(context.Background(), "", nil, cache.SetOptions{}); !errors.Is(err, cache.ErrInvalidKey) {
		t.Errorf("Set error = %v, want ErrInvalidKey", err)
	}
}

func TestNewCache_UnreachableServer(t *testing.T) {
	t.Parallel()

	// Reserve a port and close it so nothing is listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	_, err = NewCache(context.Background(), DefaultConfig(),
		WithAddress(addr),
		WithTimeouts(200*time.Millisecond, 200*time.Millisecond, 200*time.Millisecond),
		WithConnectRetry(2, 10*time.Millisecond),
	)
	if !errors.Is(err, cache.ErrConnectionFailed) {
		t.Errorf("NewCache error = %v, want ErrConnectionFailed", err)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if wrapError(nil) != nil {
		t.Error("wrapError(nil) should be nil")
	}
	if err := wrapError(context.DeadlineExceeded); !errors.Is(err, cache.ErrOperationTimeout) {
		t.Errorf("deadline = %v", err)
	}
	if err := wrapError(errors.New("boom")); !errors.Is(err, cache.ErrConnectionFailed) {
		t.Errorf("other = %v", err)
	}
}
