package sentiment

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

	"github.com/magabrotheeeer/profitpath/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Sentiment(ctx context.Context, symbol string) (*models.Sentiment, error) {
	args := m.Called(ctx, symbol)
	s, _ := args.Get(0).(*models.Sentiment)
	return s, args.Error(1)
}

func TestSentimentHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Sentiment", mock.Anything, "tsla").Return(&models.Sentiment{Symbol: "TSLA", Sentiment: "Neutral", Score: 0.1}, nil).Once()
	svc.On("Sentiment", mock.Anything, "b@d").Return(nil, models.ErrInvalidSymbol).Once()

	r := chi.NewRouter()
	r.Get("/ai/sentiment/{symbol}", New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai/sentiment/tsla", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"symbol":"TSLA","sentiment":"Neutral","score":0.1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai/sentiment/b@d", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}
