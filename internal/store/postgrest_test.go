package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velyralabs/landing/internal/sqlerr"
)

type testRow struct {
	email string
	note  any
}

func (r testRow) Columns() []string { return []string{"email", "note"} }
func (r testRow) Values() []any     { return []any{r.email, r.note} }

func newTestPostgREST(t *testing.T, handler http.HandlerFunc) *PostgREST {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	return NewPostgREST(srv.URL, "anon-key", &logger)
}

func TestPostgRESTInsert(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    map[string]any
	)

	client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Insert(context.Background(), "newsletter_subscriptions", testRow{email: "a@b.com"})
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/newsletter_subscriptions", gotPath)
	assert.Equal(t, "anon-key", gotHeaders.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "return=minimal", gotHeaders.Get("Prefer"))
	assert.Equal(t, map[string]any{"email": "a@b.com", "note": nil}, gotBody)
}

func TestPostgRESTInsertUniqueViolation(t *testing.T) {
	client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint \"newsletter_subscriptions_email_key\"","details":"Key (email)=(a@b.com) already exists.","hint":null}`))
	})

	err := client.Insert(context.Background(), "newsletter_subscriptions", testRow{email: "a@b.com"})
	require.Error(t, err)
	assert.True(t, sqlerr.IsUniqueViolation(err))

	var sqlErr *sqlerr.Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, "23505", sqlErr.DatabaseCode)
	assert.Equal(t, http.StatusConflict, sqlErr.StatusCode)
	assert.Equal(t, "newsletter_subscriptions", sqlErr.TableName)
	assert.Equal(t, "Key (email)=(a@b.com) already exists.", sqlErr.Details)
}

func TestPostgRESTInsertOtherFailure(t *testing.T) {
	client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"42501","message":"permission denied for table contacts"}`))
	})

	err := client.Insert(context.Background(), "contacts", testRow{email: "a@b.com"})
	require.Error(t, err)
	assert.False(t, sqlerr.IsUniqueViolation(err))
	assert.Equal(t, sqlerr.InsufficientPrivs, sqlerr.ErrCode(err))
}

func TestPostgRESTInsertNonJSONFailure(t *testing.T) {
	client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := client.Insert(context.Background(), "contacts", testRow{email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, sqlerr.Other, sqlerr.ErrCode(err))

	var sqlErr *sqlerr.Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, http.StatusBadGateway, sqlErr.StatusCode)
	assert.NotEmpty(t, sqlErr.Message)
}

func TestPostgRESTInsertTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logger := zerolog.Nop()
	client := NewPostgREST(srv.URL, "anon-key", &logger)

	err := client.Insert(context.Background(), "contacts", testRow{email: "a@b.com"})
	require.Error(t, err)
	assert.False(t, sqlerr.IsUniqueViolation(err))
}

func TestPostgRESTInsertSingleAttempt(t *testing.T) {
	calls := 0
	client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := client.Insert(context.Background(), "contacts", testRow{email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPostgRESTPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("rejected", func(t *testing.T) {
		client := newTestPostgREST(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		assert.Error(t, client.Ping(context.Background()))
	})
}
