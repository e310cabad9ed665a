package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/velyralabs/landing/internal/server"
	"github.com/velyralabs/landing/internal/service"
)

// SubmissionHandler serves the newsletter and contact forms.
type SubmissionHandler struct {
	Handler
	newsletter *service.NewsletterService
	contact    *service.ContactService
}

func NewSubmissionHandler(s *server.Server, newsletter *service.NewsletterService, contact *service.ContactService) *SubmissionHandler {
	return &SubmissionHandler{
		Handler:    NewHandler(s),
		newsletter: newsletter,
		contact:    contact,
	}
}

// Newsletter handles POST /api/v1/newsletter with an "email" field.
func (h *SubmissionHandler) Newsletter() echo.HandlerFunc {
	return HandleSubmission(h.Handler, "newsletter_submission", h.newsletter.Subscribe)
}

// Contact handles POST /api/v1/contact with "name", "cemail", "company"
// and "message" fields.
func (h *SubmissionHandler) Contact() echo.HandlerFunc {
	return HandleSubmission(h.Handler, "contact_submission", h.contact.Submit)
}
