package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velyralabs/landing/internal/model"
	"github.com/velyralabs/landing/internal/store"
)

type insert struct {
	table   string
	columns []string
	values  []any
}

type fakeStore struct {
	inserts []insert
	err     error
}

func (f *fakeStore) Insert(_ context.Context, table string, row store.Row) error {
	f.inserts = append(f.inserts, insert{table: table, columns: row.Columns(), values: row.Values()})
	return f.err
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func TestNewsletterRepositoryCreateSubscription(t *testing.T) {
	s := &fakeStore{}
	repo := NewNewsletterRepository(s)

	err := repo.CreateSubscription(context.Background(), &model.NewsletterSubscription{Email: "a@b.com"})
	require.NoError(t, err)

	require.Len(t, s.inserts, 1)
	assert.Equal(t, insert{
		table:   "newsletter_subscriptions",
		columns: []string{"email"},
		values:  []any{"a@b.com"},
	}, s.inserts[0])
}

func TestContactRepositoryCreateInquiry(t *testing.T) {
	s := &fakeStore{}
	repo := NewContactRepository(s)

	err := repo.CreateInquiry(context.Background(), &model.ContactInquiry{
		Name:    "Jo",
		Email:   "a@b.com",
		Message: "hello there, team",
	})
	require.NoError(t, err)

	require.Len(t, s.inserts, 1)
	assert.Equal(t, "contacts", s.inserts[0].table)
	assert.Equal(t, []string{"name", "email", "company", "message"}, s.inserts[0].columns)
	assert.Equal(t, []any{"Jo", "a@b.com", nil, "hello there, team"}, s.inserts[0].values)
}

func TestRepositoryPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("boom")
	repo := NewContactRepository(&fakeStore{err: storeErr})

	err := repo.CreateInquiry(context.Background(), &model.ContactInquiry{Name: "Jo"})
	assert.ErrorIs(t, err, storeErr)
}
