// Package rating реализует HTTP-обработчик AI-рейтинга тикера.
package rating

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
	Rating(ctx context.Context, symbol string) (*models.Rating, error)
}

// Handler обрабатывает запросы рейтинга.
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
// @Summary Рейтинг тикера
// @Description Оценка от Strong Buy до Strong Sell с коротким обоснованием.
// @Tags AI
// @Produce  json
// @Param symbol path string true "Тикер"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Failure 503 {object} response.ErrorResponse "AI не настроен"
// @Router /ai/rating/{symbol} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.rating"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	symbol := chi.URLParam(r, "symbol")
	out, err := h.service.Rating(r.Context(), symbol)
	if err != nil {
		log.Error("failed to get rating", slog.String("symbol", symbol), sl.Err(err))
		response.WriteError(w, r, err, "failed to get rating")
		return
	}

	render.JSON(w, r, response.OKWithData(out))
}
