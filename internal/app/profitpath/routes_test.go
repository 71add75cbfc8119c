package profitpath

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env: config.EnvLocal,
		Session: config.Session{
			JWTSecretKey: "test-secret",
			TokenTTL:     time.Hour,
			CookieName:   "pp_auth",
		},
		Storage:   config.Storage{UsersPath: filepath.Join(t.TempDir(), "users.json")},
		RateLimit: config.RateLimit{RPS: 1, Burst: 1},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := New(context.Background(), testConfig(t), logger)
	require.NoError(t, err)

	srv := httptest.NewServer(app.server.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, u, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, u, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return resp.StatusCode, got
}

func TestRoutes_SessionAndFavoritesFlow(t *testing.T) {
	srv := newTestServer(t)
	api := srv.URL + "/api/v1"
	c := newClient(t)

	code, got := doJSON(t, c, http.MethodPost, api+"/register",
		`{"firstName":"Alice","lastName":"Smith","email":"alice@x.com","username":"alice","password":"pw12345678"}`)
	require.Equal(t, http.StatusCreated, code, got)

	code, _ = doJSON(t, c, http.MethodPost, api+"/register",
		`{"firstName":"A","lastName":"B","email":"ALICE@x.com","username":"other","password":"pw12345678"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = doJSON(t, c, http.MethodPost, api+"/login", `{"login":"alice","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	req, err := http.NewRequest(http.MethodPost, api+"/login", strings.NewReader(`{"login":"ALICE@X.COM","password":"pw12345678"}`))
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "pp_auth" {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, int(time.Hour/time.Second), session.MaxAge)
	assert.NotEmpty(t, session.Value)

	code, got = doJSON(t, c, http.MethodGet, api+"/me", "")
	require.Equal(t, http.StatusOK, code)
	profile := got["data"].(map[string]any)
	assert.Equal(t, "alice", profile["username"])
	assert.NotContains(t, profile, "password")

	code, got = doJSON(t, c, http.MethodGet, api+"/favorites", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"favorites": []any{}}, got["data"])

	code, got = doJSON(t, c, http.MethodPost, api+"/favorites", `{"symbol":"tsla"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"favorites": []any{"TSLA"}}, got["data"])

	code, _ = doJSON(t, c, http.MethodPost, api+"/favorites", `{"symbol":"not a ticker"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, got = doJSON(t, c, http.MethodGet, api+"/favorites", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"favorites": []any{"TSLA"}}, got["data"])

	code, got = doJSON(t, c, http.MethodDelete, api+"/favorites/TSLA", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"favorites": []any{}}, got["data"])

	code, _ = doJSON(t, c, http.MethodPost, api+"/logout", "")
	assert.Equal(t, http.StatusOK, code)

	u, err := url.Parse(api)
	require.NoError(t, err)
	assert.Empty(t, c.Jar.Cookies(u))

	code, got = doJSON(t, c, http.MethodGet, api+"/favorites", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", got["error"])
}

func TestRoutes_ProtectedWithoutCookie(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	for _, path := range []string{"/me", "/favorites", "/market/quote/AAPL", "/ai/picks", "/ai/rating/AAPL", "/ai/news-summary/AAPL"} {
		code, _ := doJSON(t, c, http.MethodGet, srv.URL+"/api/v1"+path, "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestRoutes_DisabledIntegrations(t *testing.T) {
	srv := newTestServer(t)
	api := srv.URL + "/api/v1"
	c := newClient(t)

	code, got := doJSON(t, c, http.MethodGet, api+"/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"market_data": false, "ai": false, "cache": false},
		got["data"].(map[string]any)["features"])

	code, _ = doJSON(t, c, http.MethodPost, api+"/register",
		`{"firstName":"Bob","lastName":"Stone","email":"bob@x.com","username":"bob","password":"pw12345678"}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = doJSON(t, c, http.MethodPost, api+"/login", `{"login":"bob","password":"pw12345678"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, c, http.MethodGet, api+"/market/quote/AAPL", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = doJSON(t, c, http.MethodGet, api+"/ai/picks", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	// burst исчерпан первым запросом
	code, got = doJSON(t, c, http.MethodGet, api+"/ai/picks", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "too many requests", got["error"])
}

func TestRoutes_Metrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_server_requests_total{method="GET",route="/api/v1/health",status_code="200"} 1`)
}

func TestNew_RejectsNonPositiveTokenTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Hour} {
		cfg := testConfig(t)
		cfg.TokenTTL = ttl

		app, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		assert.ErrorIs(t, err, config.ErrInvalidTTL, ttl.String())
		assert.Nil(t, app)
	}
}
