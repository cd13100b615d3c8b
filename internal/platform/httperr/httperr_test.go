package httperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/platform/db"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		wantCode int
		wantMsg  string
	}{
		{"not found", db.ErrNotFound, http.StatusNotFound, "patient not found"},
		{"conflict", db.Conflictf("email already exists"), http.StatusConflict, "email already exists"},
		{"empty patch", db.ErrNoFields, http.StatusBadRequest, "nothing to update"},
		{"validation", db.Invalidf("name is required"), http.StatusBadRequest, "name is required"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := From(tt.in, "patient not found")
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected echo.HTTPError, got %T", err)
			}
			if httpErr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, httpErr.Code)
			}
			if msg, _ := httpErr.Message.(string); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestFromKeepsCauseOnUnknownErrors(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := From(cause, "patient not found")

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Internal != cause {
		t.Errorf("expected internal error %v, got %v", cause, httpErr.Internal)
	}
	if msg, _ := httpErr.Message.(string); msg != "internal server error" {
		t.Errorf("expected generic message, got %q", msg)
	}
}
