// Package summary реализует HTTP-обработчик сводки цен по избранному:
// цена и изменение за день для каждого тикера из списка пользователя.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Favorites возвращает избранное пользователя.
type Favorites interface {
	List(ctx context.Context, userID string) ([]string, error)
}

// Market строит сводку по тикерам.
type Market interface {
	Summary(ctx context.Context, symbols []string) ([]models.StockSummary, error)
}

// Handler обрабатывает запросы сводки по избранному.
type Handler struct {
	log       *slog.Logger
	favorites Favorites
	market    Market
}

// New создает Handler.
func New(log *slog.Logger, favorites Favorites, market Market) *Handler {
	return &Handler{
		log:       log,
		favorites: favorites,
		market:    market,
	}
}

// ServeHTTP godoc
// @Summary Сводка по избранному
// @Description Цена и изменение за день по каждому избранному тикеру. Тикеры без данных пропускаются.
// @Tags Favorites
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 503 {object} response.ErrorResponse "Провайдер рыночных данных не настроен"
// @Router /favorites/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, models.ErrUnauthenticated, "unauthorized")
		return
	}

	symbols, err := h.favorites.List(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list favorites", sl.Err(err))
		response.WriteError(w, r, err, "failed to list favorites")
		return
	}
	if len(symbols) == 0 {
		render.JSON(w, r, response.OKWithData([]models.StockSummary{}))
		return
	}

	summary, err := h.market.Summary(r.Context(), symbols)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		response.WriteError(w, r, err, "failed to build summary")
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
