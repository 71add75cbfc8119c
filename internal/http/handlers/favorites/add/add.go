// Package add реализует HTTP-обработчик добавления тикера в избранное.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Request - тикер для добавления.
type Request struct {
	Symbol string `json:"symbol" validate:"required"`
}

// Service добавляет тикер в избранное.
type Service interface {
	Add(ctx context.Context, userID, symbol string) ([]string, error)
}

// Handler обрабатывает запросы добавления в избранное.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить тикер в избранное
// @Description Тикер приводится к верхнему регистру. Список ограничен 50 тикерами,
// @Description сверх лимита новые тикеры не добавляются.
// @Tags Favorites
// @Accept  json
// @Produce  json
// @Param request body Request true "Тикер"
// @Success 200 {object} response.Response "Обновлённый список"
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер или JSON"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /favorites [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, models.ErrUnauthenticated, "unauthorized")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.WriteError(w, r, models.ErrInvalidInput, "invalid request")
		return
	}

	favorites, err := h.service.Add(r.Context(), identity.UserID, req.Symbol)
	switch {
	case errors.Is(err, models.ErrInvalidSymbol):
		log.Info("invalid symbol", slog.String("symbol", req.Symbol))
		response.WriteError(w, r, err, "invalid symbol")
		return
	case err != nil:
		log.Error("failed to add favorite", sl.Err(err))
		response.WriteError(w, r, err, "failed to add favorite")
		return
	}

	log.Info("favorite added", slog.String("symbol", req.Symbol), slog.Int("count", len(favorites)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"favorites": favorites,
	}))
}
