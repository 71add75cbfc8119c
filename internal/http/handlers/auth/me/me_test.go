package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestMeHandler(t *testing.T) {
	identity := models.Identity{UserID: "u1", Name: "Alice Smith", Email: "alice@x.com"}

	tests := []struct {
		name           string
		withIdentity   bool
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
	}{
		{
			name:           "profile",
			withIdentity:   true,
			mockUser:       &models.User{ID: "u1", Username: "alice", Favorites: []string{"AAPL"}},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "user vanished",
			withIdentity:   true,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "no identity",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.withIdentity {
				svc.On("Me", mock.Anything, identity).Return(tt.mockUser, tt.mockErr).Once()
			}
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.withIdentity {
				req = req.WithContext(middlewarectx.WithIdentity(req.Context(), identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.mockUser != nil {
				var got struct {
					Data models.Profile `json:"data"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, []string{"AAPL"}, got.Data.Favorites)
			}
			svc.AssertExpectations(t)
		})
	}
}
