// Package movers реализует HTTP-обработчик лидеров роста и падения.
package movers

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

// Service возвращает лидеров дня.
type Service interface {
	Movers(ctx context.Context) (*models.Movers, error)
}

// Handler обрабатывает запросы лидеров дня.
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
// @Summary Лидеры дня
// @Description До 50 лидеров роста и падения рынка США.
// @Tags Market
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /market/movers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.movers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movers, err := h.service.Movers(r.Context())
	if err != nil {
		log.Error("failed to fetch movers", sl.Err(err))
		response.WriteError(w, r, err, "failed to fetch movers")
		return
	}

	render.JSON(w, r, response.OKWithData(movers))
}
