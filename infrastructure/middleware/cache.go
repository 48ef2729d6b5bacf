package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
)

// CachingConfig configures the caching middleware.
type CachingConfig struct {
	// Cache stores encoded results. Nil disables caching.
	Cache cache.Cache
	// TTL is applied to stored entries.
	TTL time.Duration
}

// Caching returns middleware that serves results of cacheable formulas from
// the cache. Backend failures are logged and treated as misses so a broken
// cache never fails an evaluation.
func Caching(cfg CachingConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			if cfg.Cache == nil || !execCtx.Formula.Annotations().Cacheable {
				return next(ctx, execCtx)
			}

			key := cache.Key(execCtx.Formula.Name(), execCtx.Input)

			data, ok, err := cfg.Cache.Get(ctx, key)
			if err != nil {
				warnCache(execCtx, "cache read failed", err)
			} else if ok {
				var cached formula.Result
				if err := json.Unmarshal(data, &cached); err == nil {
					cached.Cached = true
					return cached, nil
				}
				_ = cfg.Cache.Delete(ctx, key)
			}

			result, err := next(ctx, execCtx)
			if err != nil {
				return result, err
			}

			data, err = json.Marshal(result)
			if err != nil {
				return result, nil
			}
			if err := cfg.Cache.Set(ctx, key, data, cache.SetOptions{TTL: cfg.TTL}); err != nil {
				warnCache(execCtx, "cache write failed", err)
			}
			return result, nil
		}
	}
}

func warnCache(execCtx *middleware.ExecutionContext, msg string, err error) {
	logging.Warn().
		Add(logging.RequestID(execCtx.RequestID)).
		Add(logging.Formula(execCtx.Formula.Name())).
		Add(logging.ErrorField(err)).
		Msg(msg)
}
