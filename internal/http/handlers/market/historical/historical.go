// Package historical реализует HTTP-обработчик истории дневных свечей.
//
// Период задаётся параметрами from и to в формате YYYY-MM-DD. Без них
// возвращается последний год.
package historical

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service возвращает историю цен.
type Service interface {
	Historical(ctx context.Context, symbol, from, to string) (*models.History, error)
}

// Handler обрабатывает запросы истории цен.
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
// @Summary История цен
// @Description Дневные свечи по тикеру за период.
// @Tags Market
// @Produce  json
// @Param symbol path string true "Тикер"
// @Param from query string false "Начало периода, YYYY-MM-DD"
// @Param to query string false "Конец периода, YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер"
// @Failure 422 {object} response.ErrorResponse "Некорректный период"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /market/historical/{symbol} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.historical"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	symbol := chi.URLParam(r, "symbol")
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")

	history, err := h.service.Historical(r.Context(), symbol, from, to)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			log.Info("invalid period", slog.String("from", from), slog.String("to", to))
			response.WriteError(w, r, err, "from and to must be YYYY-MM-DD, from <= to")
			return
		}
		log.Error("failed to fetch history", slog.String("symbol", symbol), sl.Err(err))
		response.WriteError(w, r, err, "failed to fetch history")
		return
	}

	log.Debug("history fetched", slog.Int("bars", len(history.Bars)))
	render.JSON(w, r, response.OKWithData(history))
}
