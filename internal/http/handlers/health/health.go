// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
)

// Handler отвечает на проверку живости и сообщает, какие интеграции включены.
type Handler struct {
	log      *slog.Logger
	features map[string]bool
}

// New создает Handler. features - включённые интеграции (market_data, ai, cache).
func New(log *slog.Logger, features map[string]bool) *Handler {
	return &Handler{
		log:      log,
		features: features,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status":   "ok",
		"features": h.features,
	}))
}
