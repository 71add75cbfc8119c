// Package news реализует HTTP-обработчик новостной ленты.
package news

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/lib/symbol"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service возвращает новости.
type Service interface {
	News(ctx context.Context, tickers []string, query string) ([]models.NewsItem, error)
}

// Handler обрабатывает запросы новостей.
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
// @Summary Новости
// @Description Свежие новости по тикерам. Поисковый запрос учитывается, только если тикеры не заданы.
// @Tags Market
// @Produce  json
// @Param tickers query string false "Тикеры через запятую"
// @Param q query string false "Поисковый запрос"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /market/news [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.news"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tickers, err := symbol.SplitList(r.URL.Query().Get("tickers"))
	if err != nil {
		log.Info("invalid tickers", sl.Err(err))
		response.WriteError(w, r, err, "invalid symbol")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.service.News(r.Context(), tickers, query)
	if err != nil {
		log.Error("failed to fetch news", sl.Err(err))
		response.WriteError(w, r, err, "failed to fetch news")
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
