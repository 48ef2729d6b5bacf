// Package httpapi serves the calc engine and job service over HTTP using echo.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/felixgeelhaar/calc-go/application"
	"github.com/felixgeelhaar/calc-go/domain/job"
	"github.com/felixgeelhaar/calc-go/domain/units"
	"github.com/felixgeelhaar/calc-go/infrastructure/observability"
)

// MetricsFunc returns the current metric values.
type MetricsFunc func(ctx context.Context) ([]observability.MetricPoint, error)

// Handler serves formula, conversion and job routes.
type Handler struct {
	engine  *application.Engine
	jobs    *application.JobService
	metrics MetricsFunc
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMetrics enables the metrics route.
func WithMetrics(fn MetricsFunc) HandlerOption {
	return func(h *Handler) {
		h.metrics = fn
	}
}

// NewHandler creates a handler. jobs may be nil, which disables the job
// routes.
func NewHandler(engine *application.Engine, jobs *application.JobService, opts ...HandlerOption) *Handler {
	h := &Handler{engine: engine, jobs: jobs}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes binds the API routes to g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/formulas", h.ListFormulas)
	g.GET("/formulas/:name", h.DescribeFormula)
	g.POST("/formulas/:name/evaluate", h.Evaluate)
	g.POST("/formulas/:name/export", h.Export)
	g.GET("/categories", h.Categories)
	g.GET("/convert", h.Convert)
	g.GET("/units", h.Kinds)
	g.GET("/units/:kind", h.Units)

	if h.jobs != nil {
		g.POST("/jobs", h.SubmitJob)
		g.GET("/jobs", h.ListJobs)
		g.GET("/jobs/:id", h.GetJob)
		g.POST("/jobs/:id/cancel", h.CancelJob)
		g.GET("/jobs/:id/download", h.DownloadJob)
	}

	if h.metrics != nil {
		g.GET("/metrics", h.Metrics)
	}
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"formulas": len(h.engine.List("")),
	})
}

// ListFormulas handles GET /formulas?category=.
func (h *Handler) ListFormulas(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.List(c.QueryParam("category")))
}

// Categories handles GET /categories.
func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Categories())
}

// DescribeFormula handles GET /formulas/:name.
func (h *Handler) DescribeFormula(c echo.Context) error {
	info, err := h.engine.Describe(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// readInput returns the raw request body. An empty body is an empty input.
func readInput(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}
	return body, nil
}

func evalOptions(c echo.Context) []application.EvalOption {
	return []application.EvalOption{
		application.FromSource("http"),
		application.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)),
	}
}

// Evaluate handles POST /formulas/:name/evaluate. Rejected input is a 200
// with status "invalid"; only undecodable input is a 400.
func (h *Handler) Evaluate(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	res, err := h.engine.Evaluate(c.Request().Context(), c.Param("name"), in, evalOptions(c)...)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Export handles POST /formulas/:name/export and returns plain text.
func (h *Handler) Export(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	text, err := h.engine.Export(c.Request().Context(), c.Param("name"), in, evalOptions(c)...)
	if err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, text)
}

// conversionResponse is the body of a single conversion.
type conversionResponse struct {
	Kind  string  `json:"kind"`
	Input float64 `json:"input"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Value float64 `json:"value"`
}

// Convert handles GET /convert?kind=&value=&from=[&to=]. Without "to" the
// value is converted into every unit of the kind.
func (h *Handler) Convert(c echo.Context) error {
	kind, from, to := c.QueryParam("kind"), c.QueryParam("from"), c.QueryParam("to")
	if kind == "" || from == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "kind and from are required")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("value")), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("value %q is not a number", c.QueryParam("value")))
	}

	if to == "" {
		all, err := h.engine.ConvertAll(kind, value, from)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, all)
	}

	out, err := h.engine.Convert(kind, value, from, to)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, conversionResponse{Kind: kind, Input: value, From: from, To: to, Value: out})
}

// Kinds handles GET /units.
func (h *Handler) Kinds(c echo.Context) error {
	return c.JSON(http.StatusOK, units.Kinds())
}

// Units handles GET /units/:kind.
func (h *Handler) Units(c echo.Context) error {
	list, err := units.Units(units.Kind(c.Param("kind")))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

// submitRequest is the JSON body of POST /jobs.
type submitRequest struct {
	Operation job.Operation `json:"operation"`
	Files     []job.FileRef `json:"files"`
	Target    string        `json:"target,omitempty"`
}

// SubmitJob handles POST /jobs.
func (h *Handler) SubmitJob(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	j, err := h.jobs.Submit(c.Request().Context(), req.Operation, req.Files, req.Target)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, j)
}

// ListJobs handles GET /jobs.
func (h *Handler) ListJobs(c echo.Context) error {
	jobs, err := h.jobs.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJob handles GET /jobs/:id.
func (h *Handler) GetJob(c echo.Context) error {
	j, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, j)
}

// CancelJob handles POST /jobs/:id/cancel.
func (h *Handler) CancelJob(c echo.Context) error {
	j, err := h.jobs.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, j)
}

// DownloadJob handles GET /jobs/:id/download.
func (h *Handler) DownloadJob(c echo.Context) error {
	a, err := h.jobs.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", a.Name))
	return c.Blob(http.StatusOK, a.ContentType, a.Data)
}

// Metrics handles GET /metrics.
func (h *Handler) Metrics(c echo.Context) error {
	points, err := h.metrics(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if points == nil {
		points = []observability.MetricPoint{}
	}
	return c.JSON(http.StatusOK, points)
}
