package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/errs"
	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/sqlerr"
	"github.com/velyralabs/landing/internal/validation"
)

// Newsletter messages shown to the visitor.
const (
	MsgInvalidEmail      = "Invalid email address."
	MsgInvalidNewsletter = "Invalid input."
	MsgAlreadySubscribed = "You're already subscribed!"
	MsgSubscribeFailed   = "Could not subscribe. Please try again later."
	MsgSubscribed        = "You're in! Check your inbox soon."
)

// NewsletterEmailField is the form key holding the subscriber's email.
const NewsletterEmailField = "email"

type NewsletterRepository interface {
	CreateSubscription(ctx context.Context, sub *model.NewsletterSubscription) error
}

type NewsletterService struct {
	repo     NewsletterRepository
	notifier Notifier
	logger   *zerolog.Logger
}

func NewNewsletterService(repo NewsletterRepository, notifier Notifier, logger *zerolog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// SubscribeRequest is the validated newsletter payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *SubscribeRequest) Validate() error {
	return validation.Struct(r)
}

func (r *SubscribeRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required": MsgInvalidEmail,
		"email.email":    MsgInvalidEmail,
	}
}

// Subscribe validates the submitted email and stores a subscription.
//
// An email that is already subscribed is reported as a success with its own
// message; the visitor's intent is satisfied either way.
func (s *NewsletterService) Subscribe(ctx context.Context, form Form) Result {
	log := loggerFrom(ctx, s.logger)

	req := &SubscribeRequest{
		Email: validation.Normalize(form.Get(NewsletterEmailField)),
	}
	if res, ok := checkRequest(req, MsgInvalidNewsletter); !ok {
		return res
	}

	err := s.repo.CreateSubscription(ctx, &model.NewsletterSubscription{Email: req.Email})
	switch {
	case err == nil:
	case sqlerr.IsUniqueViolation(err):
		log.Info().Str("event", "newsletter_duplicate").Msg("email already subscribed")
		return succeeded(OutcomeDuplicate, MsgAlreadySubscribed)
	default:
		log.Error().Err(err).Str("event", "newsletter_insert_failed").Msg("could not store newsletter subscription")
		return failed(OutcomeFailed, MsgSubscribeFailed)
	}

	log.Info().Str("event", "newsletter_subscribed").Msg("newsletter subscription stored")

	if err := s.notifier.NewsletterWelcome(ctx, req.Email); err != nil {
		log.Warn().Err(err).Msg("could not schedule welcome email")
	}

	return succeeded(OutcomeCreated, MsgSubscribed)
}

// checkRequest runs validation and turns a failure into the visitor-facing
// Result carrying the first field error, or fallback if there is none.
func checkRequest(req validation.Validatable, fallback string) (Result, bool) {
	err := validation.Check(req)
	if err == nil {
		return Result{}, true
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return failed(OutcomeInvalid, httpErr.FirstFieldError(fallback)), false
	}
	return failed(OutcomeInvalid, fallback), false
}
