package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velyralabs/landing/internal/server"
)

// RobotsHandler serves the crawler policy for the site.
type RobotsHandler struct {
	Handler
}

func NewRobotsHandler(s *server.Server) *RobotsHandler {
	return &RobotsHandler{
		Handler: NewHandler(s),
	}
}

// ServeRobots allows everything except /private/ and points crawlers at the
// sitemap. Without a configured site URL the request's own origin is used.
func (h *RobotsHandler) ServeRobots(c echo.Context) error {
	baseURL := h.server.Config.Site.BaseURL
	if baseURL == "" {
		baseURL = c.Scheme() + "://" + c.Request().Host
	}

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /private/\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", baseURL)

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.String(http.StatusOK, b.String())
}
