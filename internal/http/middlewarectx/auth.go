// Package middlewarectx содержит HTTP middleware ProfitPath.
//
// SessionMiddleware - Auth Gate: читает сессионную cookie, проверяет токен
// и кладёт личность пользователя в контекст. Защищённые обработчики
// выполняются только после успешной проверки.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profitpath/internal/http/response"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey - ключ для личности пользователя в контексте.
const IdentityKey Key = "identity"

// Resolver проверяет сессионный токен.
type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// TokenReader достаёт сессионный токен из запроса.
type TokenReader interface {
	Read(r *http.Request) (string, error)
}

// SessionMiddleware возвращает middleware, которое пропускает запрос дальше
// только с валидной сессией, иначе отвечает 401 Unauthorized.
func SessionMiddleware(cookies TokenReader, auth Resolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, err := cookies.Read(r)
			if err != nil {
				log.Debug("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			identity, err := auth.Resolve(r.Context(), token)
			if err != nil {
				log.Info("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity кладёт личность пользователя в контекст.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// IdentityFrom достаёт личность пользователя из контекста.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	if !ok || identity.UserID == "" {
		return models.Identity{}, false
	}
	return identity, true
}
