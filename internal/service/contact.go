package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/validation"
)

// Contact messages shown to the visitor.
const (
	MsgNameTooShort    = "Name must be at least 2 characters."
	MsgMessageTooShort = "Message must be at least 10 characters."
	MsgInvalidInput    = "Invalid input provided."
	MsgContactFailed   = "Could not send message. Please try again."
	MsgContactSent     = "Message sent! We'll reach out shortly."
)

// Contact form keys. The email input is named "cemail" on the page so it does
// not collide with the newsletter field.
const (
	ContactNameField    = "name"
	ContactEmailField   = "cemail"
	ContactCompanyField = "company"
	ContactMessageField = "message"
)

type ContactRepository interface {
	CreateInquiry(ctx context.Context, inquiry *model.ContactInquiry) error
}

type ContactService struct {
	repo     ContactRepository
	notifier Notifier
	logger   *zerolog.Logger
}

func NewContactService(repo ContactRepository, notifier Notifier, logger *zerolog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// ContactRequest is the validated contact payload. Field order is the order
// errors are reported in.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"cemail" validate:"required,email"`
	Company string `json:"company"`
	Message string `json:"message" validate:"required,min=10"`
}

func (r *ContactRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ContactRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":    MsgNameTooShort,
		"name.min":         MsgNameTooShort,
		"cemail.required":  MsgInvalidEmail,
		"cemail.email":     MsgInvalidEmail,
		"message.required": MsgMessageTooShort,
		"message.min":      MsgMessageTooShort,
	}
}

// Submit validates all contact fields and stores the inquiry.
// Only the first failing field is reported.
func (s *ContactService) Submit(ctx context.Context, form Form) Result {
	log := loggerFrom(ctx, s.logger)

	req := &ContactRequest{
		Name:    validation.Normalize(form.Get(ContactNameField)),
		Email:   validation.Normalize(form.Get(ContactEmailField)),
		Company: validation.Normalize(form.Get(ContactCompanyField)),
		Message: validation.Normalize(form.Get(ContactMessageField)),
	}
	if res, ok := checkRequest(req, MsgInvalidInput); !ok {
		return res
	}

	inquiry := &model.ContactInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	}
	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		log.Error().Err(err).Str("event", "contact_insert_failed").Msg("could not store contact inquiry")
		return failed(OutcomeFailed, MsgContactFailed)
	}

	log.Info().Str("event", "contact_received").Msg("contact inquiry stored")

	if err := s.notifier.ContactReceived(ctx, inquiry); err != nil {
		log.Warn().Err(err).Msg("could not schedule contact notification")
	}

	return succeeded(OutcomeCreated, MsgContactSent)
}
