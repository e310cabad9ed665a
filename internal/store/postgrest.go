package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/sqlerr"
)

// restPath is where a Supabase project exposes PostgREST.
const restPath = "/rest/v1"

// PostgREST inserts rows through a hosted PostgREST API.
type PostgREST struct {
	client *resty.Client
	logger *zerolog.Logger
}

// Ensure PostgREST implements Client at compile time.
var _ Client = (*PostgREST)(nil)

// apiError is the JSON error body PostgREST returns, e.g.
//
//	{"code":"23505","message":"duplicate key value violates unique constraint \"newsletter_subscriptions_email_key\"",
//	 "details":"Key (email)=(a@b.com) already exists.","hint":null}
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewPostgREST creates a client for the project at baseURL, authenticated
// with the public apiKey.
//
// No retry and no client timeout are configured: each insert is one
// request bounded only by the caller's context.
func NewPostgREST(baseURL, apiKey string, logger *zerolog.Logger) *PostgREST {
	client := resty.New().
		SetBaseURL(baseURL+restPath).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &PostgREST{
		client: client,
		logger: logger,
	}
}

// Insert sends POST /rest/v1/{table} with the row as a JSON object.
// "Prefer: return=minimal" tells PostgREST not to echo the row back.
func (p *PostgREST) Insert(ctx context.Context, table string, row Row) error {
	var apiErr apiError

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(rowMap(row)).
		SetError(&apiErr).
		Post("/" + url.PathEscape(table))
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	if resp.IsError() {
		storeErr := apiErr.toSQLError(resp.StatusCode(), resp.Status(), table)

		p.logger.Debug().
			Str("table", table).
			Int("status", resp.StatusCode()).
			Str("code", storeErr.DatabaseCode).
			Msg("store rejected insert")

		return fmt.Errorf("insert into %s: %w", table, storeErr)
	}

	return nil
}

// Ping requests the API root, which PostgREST answers with its schema
// description when the key is accepted.
func (p *PostgREST) Ping(ctx context.Context) error {
	resp, err := p.client.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ping store: unexpected status %s", resp.Status())
	}
	return nil
}

func (e apiError) toSQLError(statusCode int, status, table string) *sqlerr.Error {
	message := e.Message
	if message == "" {
		message = status
		if message == "" {
			message = http.StatusText(statusCode)
		}
	}

	sqlErr := sqlerr.New(e.Code, message, nil)
	sqlErr.Details = e.Details
	sqlErr.Hint = e.Hint
	sqlErr.TableName = table
	sqlErr.StatusCode = statusCode
	return sqlErr
}
