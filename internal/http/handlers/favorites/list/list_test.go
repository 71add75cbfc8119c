package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func TestListHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything, "u1").Return([]string{}, nil).Once()
	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	req = req.WithContext(middlewarectx.WithIdentity(req.Context(), models.Identity{UserID: "u1"}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"favorites":[]}}`, rec.Body.String())
	svc.AssertExpectations(t)
}
