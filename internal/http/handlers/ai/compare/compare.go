// Package compare реализует HTTP-обработчик AI-сравнения двух-пяти тикеров.
package compare

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Request - тикеры для сравнения.
type Request struct {
	Symbols []string `json:"symbols" validate:"required,min=2,max=5"`
}

// Service сравнивает тикеры.
type Service interface {
	Compare(ctx context.Context, symbols []string) (*models.Comparison, error)
}

// Handler обрабатывает запросы сравнения.
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
// @Summary Сравнение тикеров
// @Tags AI
// @Accept  json
// @Produce  json
// @Param request body Request true "От двух до пяти тикеров"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный тикер или JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Failure 503 {object} response.ErrorResponse "AI не настроен"
// @Router /ai/compare [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.compare"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	out, err := h.service.Compare(r.Context(), req.Symbols)
	if err != nil {
		log.Error("failed to compare symbols", sl.Err(err))
		response.WriteError(w, r, err, "failed to compare symbols")
		return
	}

	render.JSON(w, r, response.OKWithData(out))
}
