// Package httperr maps store-layer failures onto HTTP status codes so
// every handler reports the error taxonomy the same way.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dka/dka/internal/store"
)

// From translates an access-layer error into an echo HTTP error:
// validation failures map to 400, reference-table policy violations to
// 403, connection failures to 503, anything else to 500.
func From(err error) error {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	}
	var nperr *store.NotPermittedError
	if errors.As(err, &nperr) {
		return echo.NewHTTPError(http.StatusForbidden, nperr.Error())
	}
	var cerr *store.ConnectionError
	if errors.As(err, &cerr) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
