// Package httperr translates store-boundary errors to HTTP responses.
// Business failures become client errors; anything unrecognized surfaces as
// a generic 500 so internals never leak to callers.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/platform/db"
)

// From maps a service error to an echo HTTP error. notFoundMsg names the
// resource ("patient not found"); scope denials intentionally produce the
// same message as genuine absence.
func From(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, db.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrNoFields):
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	case errors.Is(err, db.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		// Keep the original error on the response for the server log; the
		// client still only sees the generic message.
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}
