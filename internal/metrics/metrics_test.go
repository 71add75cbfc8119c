package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/market/quote/{symbol}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, sym := range []string{"AAPL", "TSLA"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market/quote/"+sym, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	body := scrape(t, m)
	assert.Contains(t, body,
		`http_server_requests_total{method="GET",route="/api/v1/market/quote/{symbol}",status_code="418"} 2`)
	assert.NotContains(t, body, `route="/api/v1/market/quote/AAPL"`)
}

func TestBackendAndAuthEvents(t *testing.T) {
	m := metrics.New()

	m.ObserveBackendCall("marketdata", "PrevClose", "200", 150*time.Millisecond)
	m.AuthEvent("login", "ok")
	m.AuthEvent("login", "ok")
	m.AuthEvent("login", "invalid_credentials")

	body := scrape(t, m)
	assert.Contains(t, body, `backend_call_duration_seconds_count{method="PrevClose",service="marketdata",status="200"} 1`)
	assert.Contains(t, body, `auth_events_total{event="login",result="ok"} 2`)
	assert.Contains(t, body, `auth_events_total{event="login",result="invalid_credentials"} 1`)
}
