package router

import (
	"github.com/labstack/echo/v4"

	"github.com/velyralabs/landing/internal/handler"
)

func registerSubmissionRoutes(g *echo.Group, h *handler.Handlers) {
	g.POST("/newsletter", h.Submission.Newsletter())
	g.POST("/contact", h.Submission.Contact())
}
