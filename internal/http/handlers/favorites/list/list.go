// Package list реализует HTTP-обработчик списка избранных тикеров.
package list

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

// Service возвращает избранное пользователя.
type Service interface {
	List(ctx context.Context, userID string) ([]string, error)
}

// Handler обрабатывает запросы списка избранного.
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
// @Summary Избранные тикеры
// @Description Возвращает избранные тикеры текущего пользователя.
// @Tags Favorites
// @Produce  json
// @Success 200 {object} response.Response "Список тикеров"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Router /favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, models.ErrUnauthenticated, "unauthorized")
		return
	}

	favorites, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list favorites", sl.Err(err))
		response.WriteError(w, r, err, "failed to list favorites")
		return
	}

	log.Debug("favorites listed", slog.Int("count", len(favorites)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"favorites": favorites,
	}))
}
