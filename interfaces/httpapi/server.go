package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
)

// APIPrefix is the path prefix of every API route.
const APIPrefix = "/api/v1"

// MaxBodySize bounds request bodies.
const MaxBodySize = "1M"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// NewServer builds the echo instance serving h.
func NewServer(h *Handler, cfg domainconfig.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout.Duration()
	e.Server.WriteTimeout = cfg.WriteTimeout.Duration()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logRequest))
	e.Use(middleware.BodyLimit(MaxBodySize))

	e.GET("/health", h.Health)
	h.RegisterRoutes(e.Group(APIPrefix))

	return e
}

// requestLogger reports every request to record after the error handler
// has written the response, so the status matches what the client got.
func requestLogger(record func(middleware.RequestLoggerValues)) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			record(v)
			return nil
		},
	})
}

// logRequest writes one structured line per request.
func logRequest(v middleware.RequestLoggerValues) {
	ev := logging.Info()
	if v.Status >= http.StatusInternalServerError {
		ev = logging.Warn()
	}
	ev = ev.Add(logging.Component("http")).
		Add(logging.RequestID(v.RequestID)).
		Add(logging.Str("method", v.Method)).
		Add(logging.Str("uri", v.URI)).
		Add(logging.Int("status", v.Status)).
		Add(logging.Duration(v.Latency))
	if v.Error != nil {
		ev = ev.Add(logging.ErrorField(v.Error))
	}
	ev.Msg("request")
}

// Run serves e on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Add(logging.Component("http")).Add(logging.Str("addr", addr)).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
