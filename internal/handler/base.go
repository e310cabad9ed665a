package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/velyralabs/landing/internal/middleware"
	"github.com/velyralabs/landing/internal/server"
	"github.com/velyralabs/landing/internal/service"
)

// Handler is the base handler type holding shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// SubmitFunc maps a submitted form to its result. The services' Subscribe
// and Submit methods satisfy it.
type SubmitFunc func(ctx context.Context, form service.Form) service.Result

// StatusFor returns the HTTP status a submission outcome is answered with.
// The body is the same {success, message} shape for all of them.
func StatusFor(outcome service.Outcome) int {
	switch outcome {
	case service.OutcomeCreated:
		return http.StatusCreated
	case service.OutcomeDuplicate:
		return http.StatusOK
	case service.OutcomeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleSubmission wraps submit with form reading, logging, tracing and
// timing, and writes its Result as JSON.
//
// Usage:
//
//	api.POST("/newsletter", handler.HandleSubmission(h, "newsletter", svc.Subscribe))
func HandleSubmission(h Handler, operation string, submit SubmitFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleSubmission(c, operation, submit)
	}
}

func handleSubmission(c echo.Context, operation string, submit SubmitFunc) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		txn.AddAttribute("submission.form", operation)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling submission")

	// ---------------- Form reading phase -------------------------------------
	bindStart := time.Now()
	form, err := readForm(c)
	if err != nil {
		// Unreadable fields count as missing; validation rejects them.
		logger.Warn().Err(err).Msg("could not read submitted fields")
		form = url.Values{}
	}
	bindDuration := time.Since(bindStart)

	// ---------------- Service phase ------------------------------------------
	handlerStart := time.Now()
	result := submit(c.Request().Context(), form)
	handlerDuration := time.Since(handlerStart)

	status := StatusFor(result.Outcome)
	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("submission.outcome", result.Outcome.String())
		txn.AddAttribute("submission.success", result.Success)
		txn.AddAttribute("bind.duration_ms", bindDuration.Milliseconds())
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	event := logger.Info()
	if result.Outcome == service.OutcomeFailed {
		event = logger.Warn()
	}
	event.
		Str("outcome", result.Outcome.String()).
		Int("status", status).
		Dur("bind_duration", bindDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", totalDuration).
		Msg("submission handled")

	return c.JSON(status, result)
}
