package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthResponse struct {
	Status string                       `json:"status"`
	Checks map[string]map[string]string `json:"checks"`
}

func checkHealth(t *testing.T, h *HealthHandler) (int, healthResponse) {
	t.Helper()

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.NoError(t, h.CheckHealth(c))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestCheckHealthy(t *testing.T) {
	code, resp := checkHealth(t, NewHealthHandler(newTestServer(&fakeStore{})))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Checks[CheckStore]["status"])
	assert.NotContains(t, resp.Checks, CheckRedis)
}

func TestCheckHealthStoreDown(t *testing.T) {
	code, resp := checkHealth(t, NewHealthHandler(newTestServer(&fakeStore{pingErr: errUnreachable})))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unhealthy", resp.Checks[CheckStore]["status"])
	assert.Equal(t, errUnreachable.Error(), resp.Checks[CheckStore]["error"])
}

func TestCheckHealthRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	s := newTestServer(&fakeStore{})
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })

	h := NewHealthHandler(s)

	code, resp := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Checks[CheckRedis]["status"])

	mr.Close()

	code, resp = checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code, "redis is not critical")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "unhealthy", resp.Checks[CheckRedis]["status"])
}

func TestCheckHealthDisabledChecks(t *testing.T) {
	s := newTestServer(&fakeStore{pingErr: errUnreachable})
	s.Config.Observability.HealthChecks.Enabled = false

	code, resp := checkHealth(t, NewHealthHandler(s))

	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Checks)
}
