package service

import (
	"github.com/velyralabs/landing/internal/lib/job"
	"github.com/velyralabs/landing/internal/repository"
	"github.com/velyralabs/landing/internal/server"
)

type Services struct {
	Newsletter *NewsletterService
	Contact    *ContactService
	Job        *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier = NopNotifier{}
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Newsletter: NewNewsletterService(repos.Newsletter, notifier, s.Logger),
		Contact:    NewContactService(repos.Contact, notifier, s.Logger),
		Job:        s.Job,
	}, nil
}
