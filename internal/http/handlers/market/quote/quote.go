// Package quote реализует HTTP-обработчик котировки по тикеру.
package quote

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

// Service - источник данных для обработчика.
type Service interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
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
// @Summary Котировка
// @Description Агрегат предыдущей торговой сессии по тикеру.
// @Tags Market
// @Produce  json
// @Param symbol path string true "Тикер"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера"
// @Failure 503 {object} response.ErrorResponse "Провайдер не настроен"
// @Router /market/quote/{symbol} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.quote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	symbol := chi.URLParam(r, "symbol")
	out, err := h.service.Quote(r.Context(), symbol)
	if err != nil {
		log.Error("failed to fetch quote", slog.String("symbol", symbol), sl.Err(err))
		response.WriteError(w, r, err, "failed to fetch quote")
		return
	}

	render.JSON(w, r, response.OKWithData(out))
}
