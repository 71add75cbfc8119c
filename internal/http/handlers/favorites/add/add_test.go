package add

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Add(ctx context.Context, userID, symbol string) ([]string, error) {
	args := m.Called(ctx, userID, symbol)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAddHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSymbol     string
		mockList       []string
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "добавление тикера",
			body:           `{"symbol":"tsla"}`,
			mockSymbol:     "tsla",
			mockList:       []string{"AAPL", "TSLA"},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "некорректный тикер",
			body:           `{"symbol":"bad symbol!"}`,
			mockSymbol:     "bad symbol!",
			mockErr:        fmt.Errorf("services.favorites.Add: %w", models.ErrInvalidSymbol),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid symbol",
		},
		{
			name:           "пустое тело",
			body:           `{}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Symbol is a required field",
		},
		{
			name:           "ошибка записи",
			body:           `{"symbol":"MSFT"}`,
			mockSymbol:     "MSFT",
			mockErr:        models.ErrStorageFailure,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to add favorite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockSymbol != "" {
				svc.On("Add", mock.Anything, "u1", tt.mockSymbol).Return(tt.mockList, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			req = req.WithContext(middlewarectx.WithIdentity(ctx, models.Identity{UserID: "u1"}))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, map[string]any{"favorites": []any{"AAPL", "TSLA"}}, got["data"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAddHandler_NoIdentity(t *testing.T) {
	svc := new(ServiceMock)
	handler := New(newNoopLogger(), svc)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/favorites", strings.NewReader(`{"symbol":"AAPL"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}
