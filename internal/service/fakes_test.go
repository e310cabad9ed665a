package service

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/sqlerr"
)

// fakeNewsletterRepo enforces email uniqueness the way the store does.
type fakeNewsletterRepo struct {
	mu      sync.Mutex
	emails  map[string]bool
	inserts int
	err     error
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{emails: map[string]bool{}}
}

func (f *fakeNewsletterRepo) CreateSubscription(_ context.Context, sub *model.NewsletterSubscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inserts++
	if f.err != nil {
		return f.err
	}
	if f.emails[sub.Email] {
		return sqlerr.New("23505", `duplicate key value violates unique constraint "newsletter_subscriptions_email_key"`, nil)
	}
	f.emails[sub.Email] = true
	return nil
}

type fakeContactRepo struct {
	inquiries []model.ContactInquiry
	err       error
}

func (f *fakeContactRepo) CreateInquiry(_ context.Context, inquiry *model.ContactInquiry) error {
	if f.err != nil {
		return f.err
	}
	f.inquiries = append(f.inquiries, *inquiry)
	return nil
}

type fakeNotifier struct {
	welcomed  []string
	contacted []model.ContactInquiry
	err       error
}

func (f *fakeNotifier) NewsletterWelcome(_ context.Context, email string) error {
	f.welcomed = append(f.welcomed, email)
	return f.err
}

func (f *fakeNotifier) ContactReceived(_ context.Context, inquiry *model.ContactInquiry) error {
	f.contacted = append(f.contacted, *inquiry)
	return f.err
}

var errStoreDown = errors.New("connection refused")

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func form(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}
