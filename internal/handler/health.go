package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes with a plain "ok".  It does not touch
// the database; a booking outage should surface through request errors,
// not by taking the process out of rotation.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
