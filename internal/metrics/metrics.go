package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Answer sources for AnswersTotal.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// AnswersTotal counts successful answers per endpoint, split by whether the
	// text came from the model or from the canned fallback.
	AnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_answers_total",
		Help: "Answers returned to clients by endpoint and source.",
	}, []string{"endpoint", "source"})

	// ModelCallDuration tracks generateContent latency per model and outcome.
	ModelCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mentor_model_call_duration_seconds",
		Help:    "Time spent waiting on the generative model.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"model", "outcome"})

	// ModelAvailable is 1 when a model tier was selected at startup, 0 otherwise.
	ModelAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mentor_model_available",
		Help: "Whether a generative model is active (1) or not (0).",
	})
)

// Middleware records one RequestsTotal sample per request. Errors returned by
// the chain are handed to echo's error handler first so the final status is
// the one the client sees.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			RequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}
