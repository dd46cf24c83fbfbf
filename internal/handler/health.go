// Package handler exposes the storefront's HTTP endpoints: auth, catalog
// browsing and administration, the cart, order history and the newsletter.
// Handlers bundle their service dependencies in structs; every failure is
// translated into a JSON error at this boundary and nothing panics through.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
