// Package remove реализует HTTP-обработчик удаления тикера из избранного.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service удаляет тикер из избранного.
type Service interface {
	Remove(ctx context.Context, userID, symbol string) ([]string, error)
}

// Handler обрабатывает запросы удаления из избранного.
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
// @Summary Удалить тикер из избранного
// @Description Сравнение без учёта регистра. Удаление отсутствующего тикера не ошибка.
// @Tags Favorites
// @Produce  json
// @Param symbol path string true "Тикер"
// @Success 200 {object} response.Response "Обновлённый список"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /favorites/{symbol} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, models.ErrUnauthenticated, "unauthorized")
		return
	}

	symbol := chi.URLParam(r, "symbol")
	favorites, err := h.service.Remove(r.Context(), identity.UserID, symbol)
	if err != nil {
		log.Error("failed to remove favorite", sl.Err(err))
		response.WriteError(w, r, err, "failed to remove favorite")
		return
	}

	log.Info("favorite removed", slog.String("symbol", symbol))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"favorites": favorites,
	}))
}
