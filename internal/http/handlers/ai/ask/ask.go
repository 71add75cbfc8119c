// Package ask реализует HTTP-обработчик свободного вопроса к AI-аналитику.
package ask

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

// Request - вопрос пользователя.
type Request struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// Service отвечает на вопросы.
type Service interface {
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

// Handler обрабатывает вопросы к AI.
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
// @Summary Вопрос AI-аналитику
// @Tags AI
// @Accept  json
// @Produce  json
// @Param request body Request true "Вопрос"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Failure 503 {object} response.ErrorResponse "AI не настроен"
// @Router /ai/ask [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.ask"

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

	answer, err := h.service.Ask(r.Context(), req.Question)
	if err != nil {
		log.Error("failed to answer question", sl.Err(err))
		response.WriteError(w, r, err, "failed to answer question")
		return
	}

	render.JSON(w, r, response.OKWithData(answer))
}
