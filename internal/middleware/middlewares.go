package middleware

import (
	"github.com/velyralabs/landing/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// they are built once and reused during router setup.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, the body
	// limit and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic and adds custom transaction attributes.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components. Without New Relic the
// tracing middleware degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
