// Package sentiment реализует HTTP-обработчик оценки настроения рынка, score в диапазоне [-1, 1].
package sentiment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service - AI-сервис.
type Service interface {
	Sentiment(ctx context.Context, symbol string) (*models.Sentiment, error)
}

// Handler обрабатывает запросы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Настроение рынка по тикеру
// @Tags AI
// @Produce  json
// @Param symbol path string true "Тикер"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Failure 503 {object} response.ErrorResponse "AI не настроен"
// @Router /ai/sentiment/{symbol} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.sentiment"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	symbol := chi.URLParam(r, "symbol")
	out, err := h.service.Sentiment(r.Context(), symbol)
	if err != nil {
		log.Error("failed to get sentiment", slog.String("symbol", symbol), sl.Err(err))
		response.WriteError(w, r, err, "failed to get sentiment")
		return
	}

	render.JSON(w, r, response.OKWithData(out))
}
