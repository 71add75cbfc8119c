// Package me реализует HTTP-обработчик профиля текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Service возвращает запись пользователя по личности из сессии.
type Service interface {
	Me(ctx context.Context, identity models.Identity) (*models.User, error)
}

// Handler обрабатывает запросы профиля.
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
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя текущей сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		log.Error("identity missing in context")
		response.WriteError(w, r, models.ErrUnauthenticated, "unauthorized")
		return
	}

	user, err := h.service.Me(r.Context(), identity)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("session user not found", slog.String("user_id", identity.UserID))
			response.WriteError(w, r, err, "user not found")
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		response.WriteError(w, r, err, "failed to load profile")
		return
	}

	render.JSON(w, r, response.OKWithData(user.Profile()))
}
