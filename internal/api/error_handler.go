package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// errorBody is the canonical error envelope rendered for every 4xx/5xx,
// whether the failure happened at the gate, in the policy, or in a handler.
type errorBody struct {
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	Timestamp string   `json:"timestamp"`
}

func newErrorBody(code int, message string, details []string) errorBody {
	if message == "" {
		message = "No message available"
	}
	return errorBody{
		Status:    code,
		Error:     http.StatusText(code),
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewHTTPErrorHandler returns the echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Surfaces validation failures with a per-field detail list.
//   - Logs unexpected errors server-side and returns a generic message only.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, details := resolveError(err, log, c)
		_ = c.JSON(code, newErrorBody(code, msg, details))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	// Validation failures carry their field messages into the envelope.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation error", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	switch {
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrSelfDelete):
		return http.StatusBadRequest, err.Error(), nil
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized, "Invalid username or password", nil
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to access this resource", nil
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrGameNotFound):
		return http.StatusNotFound, err.Error(), nil
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error(), nil
	}

	// Unexpected error: log the real cause, never leak it to the caller.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError,
		"An unexpected internal server error occurred. Please try again later.", nil
}
