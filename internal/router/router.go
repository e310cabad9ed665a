// Package router builds the echo instance: global middleware, system routes
// and the versioned API group with the form endpoints.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/velyralabs/landing/internal/handler"
	"github.com/velyralabs/landing/internal/middleware"
	"github.com/velyralabs/landing/internal/server"
)

// NewRouter wires middleware and routes.
//
// Middleware order matters: RequestID runs before the New Relic and context
// middleware so the request logger and the transaction both carry the id,
// and RequestLogger runs after ContextEnhancer so it can use that logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerSubmissionRoutes(v1, h)

	return router
}
