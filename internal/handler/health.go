package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/middleware"
	"github.com/velyralabs/landing/internal/server"
)

// Dependency check names, as listed in observability.health_checks.checks.
const (
	CheckStore = "store"
	CheckRedis = "redis"
)

// HealthHandler exposes GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// dependencyCheck pings one dependency. critical checks make the service
// unhealthy when they fail; the others only show up in the report.
type dependencyCheck struct {
	name     string
	critical bool
	ping     func(ctx context.Context) error
}

// CheckHealth returns the service status and the enabled dependency checks.
//
// It returns 200 when every critical check passes and 503 otherwise.
// The store is critical; redis only carries follow-up emails, so a redis
// failure is reported but the site keeps taking submissions.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	isHealthy := true

	for _, check := range h.dependencyChecks() {
		result, ok := h.runCheck(c.Request().Context(), &logger, check)
		checks[check.name] = result
		if !ok && check.critical {
			isHealthy = false
		}
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) dependencyChecks() []dependencyCheck {
	obs := h.server.Config.Observability

	var checks []dependencyCheck
	if obs.CheckEnabled(CheckStore) && h.server.Store != nil {
		checks = append(checks, dependencyCheck{
			name:     CheckStore,
			critical: true,
			ping:     h.server.Store.Ping,
		})
	}
	if obs.CheckEnabled(CheckRedis) && h.server.Redis != nil {
		checks = append(checks, dependencyCheck{
			name: CheckRedis,
			ping: func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			},
		})
	}
	return checks
}

func (h *HealthHandler) runCheck(ctx context.Context, logger *zerolog.Logger, check dependencyCheck) (map[string]any, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := check.ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":       check.name,
			"operation":        "health_check",
			"error_type":       check.name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]any{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, false
	}

	logger.Debug().
		Str("check", check.name).
		Dur("response_time", elapsed).
		Msg("dependency health check passed")

	return map[string]any{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}, true
}

// recordHealthCheckError sends a New Relic custom event when APM is on.
func (h *HealthHandler) recordHealthCheckError(params map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
