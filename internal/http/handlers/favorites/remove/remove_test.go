package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, userID, symbol string) ([]string, error) {
	args := m.Called(ctx, userID, symbol)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			url:  "/favorites/msft",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "u1", "msft").Return([]string{"AAPL"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"favorites":["AAPL"]}}`,
		},
		{
			name: "отсутствующий тикер",
			url:  "/favorites/NFLX",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "u1", "NFLX").Return([]string{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"favorites":[]}}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/favorites/AAPL",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "u1", "AAPL").Return(nil, models.ErrStorageFailure)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to remove favorite"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ctx := middlewarectx.WithIdentity(r.Context(), models.Identity{UserID: "u1"})
					next.ServeHTTP(w, r.WithContext(ctx))
				})
			})
			r.Delete("/favorites/{symbol}", New(logger, svc).ServeHTTP)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
