// Package login реализует HTTP-обработчик входа пользователя.
//
// Пользователь входит по username или email. При успехе сессионный токен
// кладётся в HttpOnly cookie, в теле ответа возвращается профиль.
package login

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

// Request - учётные данные. Login - username или email.
type Request struct {
	Login    string `json:"login" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// Service описывает вход пользователя.
type Service interface {
	Login(ctx context.Context, login, password string) (string, *models.User, error)
}

// SessionWriter выставляет сессионную cookie.
type SessionWriter interface {
	Set(w http.ResponseWriter, token string)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	session  SessionWriter
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, session SessionWriter) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		session:  session,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет учётные данные и устанавливает сессионную cookie pp_auth.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Username или email и пароль"
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
	log.Info("request body decoded", slog.String("login", req.Login))

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.WriteError(w, r, models.ErrInvalidInput, "invalid request")
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Login, req.Password)
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.Info("user not found", slog.String("login", req.Login))
		response.WriteError(w, r, err, "user not found")
		return
	case errors.Is(err, models.ErrInvalidCredentials):
		log.Info("invalid credentials", slog.String("login", req.Login))
		response.WriteError(w, r, err, "invalid credentials")
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		response.WriteError(w, r, err, "failed to login")
		return
	}

	h.session.Set(w, token)
	log.Info("login success", slog.String("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(user.Profile()))
}
