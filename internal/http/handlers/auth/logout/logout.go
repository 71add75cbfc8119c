// Package logout реализует HTTP-обработчик выхода: сессионная cookie
// очищается всегда, даже если её не было.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
)

// SessionClearer очищает сессионную cookie.
type SessionClearer interface {
	Clear(w http.ResponseWriter)
}

// Handler обрабатывает запросы выхода.
type Handler struct {
	log     *slog.Logger
	session SessionClearer
}

// New создает Handler.
func New(log *slog.Logger, session SessionClearer) *Handler {
	return &Handler{
		log:     log,
		session: session,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Очищает сессионную cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.session.Clear(w)
	log.Info("session cleared")
	render.JSON(w, r, response.OKWithData(map[string]any{"loggedOut": true}))
}
