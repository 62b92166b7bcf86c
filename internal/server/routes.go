package server

import (
	"net/http"
	"strings"

	"GeminiMentor/internal/metrics"
	"GeminiMentor/internal/utility"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(LoggerMiddleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogURI:        true,
		LogMethod:     true,
		LogLatency:    true,
		LogValuesFunc: logRequest,
	}))
	e.Use(metrics.Middleware())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: logPanic,
	}))

	// Cross-origin access is limited to /api/* and to loopback origins.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		AllowOriginFunc: func(origin string) (bool, error) {
			return utility.IsLoopbackOrigin(origin), nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAccept, echo.HeaderContentType, echo.HeaderXRequestID},
		MaxAge:       300,
	}))

	e.GET("/", s.livenessHandler)
	e.GET("/health", s.systemHealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/skill-recommendations", s.skillRecommendationsHandler)
	api.POST("/nutrition_ai", s.nutritionHandler)

	return e
}

// LoggerMiddleware tags every request with an ID and stores a child logger
// carrying it in the echo context.
func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		logger := utility.LoggerFromContext(c).With().
			Str("request_id", requestID).
			Str("ip", utility.GetRealIP(c)).
			Logger()

		c.Set(utility.LoggerKey, &logger)

		return next(c)
	}
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	utility.LoggerFromContext(c).Info().
		Str("method", v.Method).
		Str("uri", v.URI).
		Int("status", v.Status).
		Dur("latency", v.Latency).
		Msg("request")
	return nil
}

func logPanic(c echo.Context, err error, stack []byte) error {
	utility.LoggerFromContext(c).Error().Err(err).Bytes("stack", stack).Msg("Recovered from panic")
	return err
}
