package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velyralabs/landing/internal/config"
	"github.com/velyralabs/landing/internal/server"
	"github.com/velyralabs/landing/internal/store"
)

type fakeStore struct {
	pingErr error
}

func (f *fakeStore) Insert(context.Context, string, store.Row) error { return nil }

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

var errUnreachable = errors.New("store unreachable")

func newTestServer(st store.Client) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		Store:  st,
	}
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}
