// Package repository persists the site's submissions.
//
// Repositories translate model rows into store inserts. They hold no SQL of
// their own: the shared store.Client decides whether a row travels over the
// hosted REST API or a direct Postgres connection.
package repository

import (
	"github.com/velyralabs/landing/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Newsletter *NewsletterRepository
	Contact    *ContactRepository
}

// NewRepositories constructs the repository container on top of the store
// client owned by the server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Newsletter: NewNewsletterRepository(s.Store),
		Contact:    NewContactRepository(s.Store),
	}
}
