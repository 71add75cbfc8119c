package middlewarectx_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/session"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Мок для Resolver
type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, token string) (models.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.Identity), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionMiddleware(t *testing.T) {
	cookies := session.NewCookies("pp_auth", time.Hour, false)

	tests := []struct {
		name           string
		cookie         string
		mockIdentity   models.Identity
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing cookie",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			cookie:         "bad",
			mockErr:        models.ErrUnauthenticated,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			cookie:         "good",
			mockIdentity:   models.Identity{UserID: "u1", Email: "a@x.com"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			if tt.cookie != "" {
				resolver.On("Resolve", mock.Anything, tt.cookie).Return(tt.mockIdentity, tt.mockErr).Once()
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				identity, ok := middlewarectx.IdentityFrom(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tt.mockIdentity, identity)
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.SessionMiddleware(cookies, resolver, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "pp_auth", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				var body map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, "Error", body["status"])
				assert.Equal(t, "unauthorized", body["error"])
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestIdentityFrom_Empty(t *testing.T) {
	_, ok := middlewarectx.IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := middlewarectx.WithIdentity(context.Background(), models.Identity{})
	_, ok = middlewarectx.IdentityFrom(ctx)
	assert.False(t, ok)
}
