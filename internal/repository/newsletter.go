package repository

import (
	"context"

	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/store"
)

type NewsletterRepository struct {
	store store.Client
}

func NewNewsletterRepository(s store.Client) *NewsletterRepository {
	return &NewsletterRepository{store: s}
}

// CreateSubscription inserts one subscription row. A repeated email fails
// with a uniqueness violation (see sqlerr.IsUniqueViolation).
func (r *NewsletterRepository) CreateSubscription(ctx context.Context, sub *model.NewsletterSubscription) error {
	return r.store.Insert(ctx, sub.TableName(), sub)
}
