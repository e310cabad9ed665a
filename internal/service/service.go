// Package service contains the business logic.
//
// It sits between the handler and repository layers. Each form service
// takes the raw submitted fields, validates and normalizes them, calls the
// repository and maps the outcome to the Result shown to the visitor.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/model"
)

// Form is a submitted field-value mapping. url.Values satisfies it.
// A missing key reads as the empty string.
type Form interface {
	Get(key string) string
}

// Outcome classifies a submission for the transport layer.
type Outcome int

const (
	// OutcomeCreated means a new row was stored.
	OutcomeCreated Outcome = iota
	// OutcomeDuplicate means the row already existed; still a success.
	OutcomeDuplicate
	// OutcomeInvalid means validation failed and the store was not called.
	OutcomeInvalid
	// OutcomeFailed means the store rejected the insert.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what a submission returns to the visitor.
type Result struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Outcome Outcome `json:"-"`
}

func succeeded(outcome Outcome, message string) Result {
	return Result{Success: true, Message: message, Outcome: outcome}
}

func failed(outcome Outcome, message string) Result {
	return Result{Success: false, Message: message, Outcome: outcome}
}

// Notifier sends the follow-up emails for a stored submission.
// Implementations only schedule work; delivery happens elsewhere.
type Notifier interface {
	NewsletterWelcome(ctx context.Context, email string) error
	ContactReceived(ctx context.Context, inquiry *model.ContactInquiry) error
}

// NopNotifier discards every notification. Used when background jobs are off.
type NopNotifier struct{}

func (NopNotifier) NewsletterWelcome(context.Context, string) error { return nil }

func (NopNotifier) ContactReceived(context.Context, *model.ContactInquiry) error { return nil }

// loggerFrom prefers the request-scoped logger stored in ctx by the
// context middleware and falls back to the service logger.
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
