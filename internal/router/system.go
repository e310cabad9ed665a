package router

import (
	"github.com/labstack/echo/v4"

	"github.com/velyralabs/landing/internal/handler"
	"github.com/velyralabs/landing/static"
)

// registerSystemRoutes registers endpoints that are not part of the forms:
// health, crawler policy and API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/robots.txt", h.Robots.ServeRobots)

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
