package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers GET /healthz for load balancers and uptime probes.
// It reports nothing about dependencies; the process being able to
// serve the request is the whole signal.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
