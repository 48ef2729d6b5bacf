package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/felixgeelhaar/calc-go/application"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/job"
	"github.com/felixgeelhaar/calc-go/domain/units"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
	"github.com/felixgeelhaar/calc-go/infrastructure/observability"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, formula.ErrFormulaNotFound),
		errors.Is(err, job.ErrJobNotFound),
		errors.Is(err, observability.ErrNoReader):
		return http.StatusNotFound

	case errors.Is(err, formula.ErrInvalidInput),
		errors.Is(err, job.ErrInvalidFile),
		errors.Is(err, job.ErrUnknownOperation),
		errors.Is(err, job.ErrInvalidJobID),
		errors.Is(err, units.ErrUnknownKind),
		errors.Is(err, units.ErrUnknownUnit),
		errors.Is(err, units.ErrNotFinite):
		return http.StatusBadRequest

	case errors.Is(err, job.ErrJobNotReady),
		errors.Is(err, job.ErrJobTerminal):
		return http.StatusConflict

	case errors.Is(err, resilience.ErrOverloaded),
		errors.Is(err, application.ErrServiceClosed):
		return http.StatusServiceUnavailable

	case errors.Is(err, formula.ErrEvaluationTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// httpError converts err into an *echo.HTTPError. Unmapped errors are
// logged and reported without detail.
func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logging.Error().
			Add(logging.Component("http")).
			Add(logging.ErrorField(err)).
			Msg("request failed")
		return echo.NewHTTPError(status, http.StatusText(status)).SetInternal(err)
	}
	return echo.NewHTTPError(status, err.Error())
}
