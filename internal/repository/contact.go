package repository

import (
	"context"

	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/store"
)

type ContactRepository struct {
	store store.Client
}

func NewContactRepository(s store.Client) *ContactRepository {
	return &ContactRepository{store: s}
}

// CreateInquiry inserts one contact row.
func (r *ContactRepository) CreateInquiry(ctx context.Context, inquiry *model.ContactInquiry) error {
	return r.store.Insert(ctx, inquiry.TableName(), inquiry)
}
