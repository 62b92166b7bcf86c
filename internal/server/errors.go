package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"GeminiMentor/internal/utility"
	"github.com/labstack/echo/v4"
)

const maxBodyBytes = 1 << 20

// Client-facing messages. Internal detail never goes past the logs.
const (
	msgInvalidJSON         = "Invalid JSON data"
	msgMissingProfile      = "Missing profile fields"
	msgQuestionRequired    = "Question is required"
	msgInternalServerError = "Internal server error"
	msgBodyTooLarge        = "Request body too large"
)

var errInvalidJSON = errors.New("invalid JSON data")

// decodeJSONBody reads a JSON object into v. Anything that is not a non-empty
// JSON object, or that does not fit v's field types, is errInvalidJSON.
// Oversized bodies yield a 413 echo.HTTPError.
func decodeJSONBody(c echo.Context, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		}
		return errInvalidJSON
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil || len(top) == 0 {
		return errInvalidJSON
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// httpErrorHandler renders every error as {"error": "..."}. Client errors raised
// by echo keep their status; anything else is an opaque 500.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := utility.LoggerFromContext(c)

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		logger.Warn().Int("status", he.Code).Str("path", c.Request().URL.Path).Msg(msg)
		if err := c.JSON(he.Code, map[string]string{"error": msg}); err != nil {
			logger.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	if err := c.JSON(http.StatusInternalServerError, map[string]string{"error": msgInternalServerError}); err != nil {
		logger.Error().Err(err).Msg("Failed to write error response")
	}
}
