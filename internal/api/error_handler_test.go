package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

type envelope struct {
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Details   []string `json:"details"`
	Timestamp string   `json:"timestamp"`
}

func renderError(t *testing.T, err error) (envelope, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v (%s)", err, rec.Body.String())
	}
	return env, rec
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrUsernameTaken, http.StatusBadRequest, "the username is already in use"},
		{domain.ErrSelfDelete, http.StatusBadRequest, "you are not allowed to delete your own user account"},
		{domain.ErrInvalidArgument, http.StatusBadRequest, "both id and username fields are empty"},
		{domain.ErrBadCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
		{domain.ErrForbidden, http.StatusForbidden, "You do not have permission to access this resource"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrGameNotFound, http.StatusNotFound, "video game not found"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed login attempts"},
	}

	for _, tt := range tests {
		env, rec := renderError(t, tt.err)
		if rec.Code != tt.status {
			t.Fatalf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		if env.Status != tt.status {
			t.Fatalf("%v: envelope status = %d, want %d", tt.err, env.Status, tt.status)
		}
		if env.Error != http.StatusText(tt.status) {
			t.Fatalf("%v: reason = %q, want %q", tt.err, env.Error, http.StatusText(tt.status))
		}
		if env.Message != tt.message {
			t.Fatalf("%v: message = %q, want %q", tt.err, env.Message, tt.message)
		}
		if env.Timestamp == "" {
			t.Fatalf("%v: timestamp missing", tt.err)
		}
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	env, rec := renderError(t, &domain.ValidationError{Fields: []string{"username: is required", "email: must be a valid email"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Message != "Validation error" {
		t.Fatalf("message = %q", env.Message)
	}
	if len(env.Details) != 2 {
		t.Fatalf("details = %v", env.Details)
	}
}

func TestErrorHandler_DetailsOmittedWhenEmpty(t *testing.T) {
	_, rec := renderError(t, domain.ErrUserNotFound)
	var raw map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if _, present := raw["details"]; present {
		t.Fatalf("details should be omitted when empty: %s", rec.Body.String())
	}
}

func TestErrorHandler_BlankMessageGetsPlaceholder(t *testing.T) {
	env, _ := renderError(t, echo.NewHTTPError(http.StatusBadRequest, ""))
	if env.Message != "No message available" {
		t.Fatalf("message = %q, want placeholder", env.Message)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	env, rec := renderError(t, errors.New("pq: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Message == "pq: connection reset by peer" {
		t.Fatalf("internal detail leaked to the caller")
	}
}
