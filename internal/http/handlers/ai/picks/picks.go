// Package picks реализует HTTP-обработчик идей дня от AI-аналитика.
package picks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service возвращает идеи дня.
type Service interface {
	DailyPicks(ctx context.Context) (*models.DailyPicks, error)
}

// Handler обрабатывает запросы идей дня.
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
// @Summary Идеи дня
// @Tags AI
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Failure 503 {object} response.ErrorResponse "AI не настроен"
// @Router /ai/picks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.picks"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	picks, err := h.service.DailyPicks(r.Context())
	if err != nil {
		log.Error("failed to get daily picks", sl.Err(err))
		response.WriteError(w, r, err, "failed to get daily picks")
		return
	}

	render.JSON(w, r, response.OKWithData(picks))
}
