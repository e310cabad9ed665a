package handler

import (
	"github.com/velyralabs/landing/internal/server"
	"github.com/velyralabs/landing/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object around.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Robots     *RobotsHandler
	Submission *SubmissionHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Robots:     NewRobotsHandler(s),
		Submission: NewSubmissionHandler(s, services.Newsletter, services.Contact),
	}
}
