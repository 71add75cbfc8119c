package profitpath

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// swagger-документ регистрируется в init пакета docs
	_ "github.com/magabrotheeeer/profitpath/docs"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/ask"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/compare"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/newssummary"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/picks"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/rating"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/review"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/ai/sentiment"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/favorites/add"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/favorites/list"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/favorites/remove"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/favorites/summary"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/health"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/market/historical"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/market/movers"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/market/news"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/market/quote"
	"github.com/magabrotheeeer/profitpath/internal/http/handlers/market/ticker"
	"github.com/magabrotheeeer/profitpath/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profitpath/internal/http/session"
	"github.com/magabrotheeeer/profitpath/internal/metrics"
	authservice "github.com/magabrotheeeer/profitpath/internal/services/auth"
	"github.com/magabrotheeeer/profitpath/internal/services/favorites"
	"github.com/magabrotheeeer/profitpath/internal/services/insights"
	"github.com/magabrotheeeer/profitpath/internal/services/market"
)

// Dependencies - всё, что нужно маршрутам.
type Dependencies struct {
	Auth      *authservice.AuthService
	Favorites *favorites.Service
	Market    *market.Service
	Insights  *insights.Service
	Cookies   *session.Cookies
	Limiter   *rate.Limiter
	Metrics   *metrics.Metrics
	Features  map[string]bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Dependencies) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, d.Auth, d.Cookies).ServeHTTP)
		r.Post("/logout", logout.New(logger, d.Cookies).ServeHTTP)
		r.Get("/health", health.New(logger, d.Features).ServeHTTP)

		// Группа с сессионной cookie
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(d.Cookies, d.Auth, logger))

			r.Get("/me", me.New(logger, d.Auth).ServeHTTP)

			r.Get("/favorites", list.New(logger, d.Favorites).ServeHTTP)
			r.Post("/favorites", add.New(logger, d.Favorites).ServeHTTP)
			r.Get("/favorites/summary", summary.New(logger, d.Favorites, d.Market).ServeHTTP)
			r.Delete("/favorites/{symbol}", remove.New(logger, d.Favorites).ServeHTTP)

			r.Get("/market/quote/{symbol}", quote.New(logger, d.Market).ServeHTTP)
			r.Get("/market/ticker/{symbol}", ticker.New(logger, d.Market).ServeHTTP)
			r.Get("/market/historical/{symbol}", historical.New(logger, d.Market).ServeHTTP)
			r.Get("/market/news", news.New(logger, d.Market).ServeHTTP)
			r.Get("/market/movers", movers.New(logger, d.Market).ServeHTTP)

			// Запросы к модели дорогие, поэтому ограничены по частоте
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(d.Limiter, logger))
				r.Post("/ai/ask", ask.New(logger, d.Insights).ServeHTTP)
				r.Get("/ai/picks", picks.New(logger, d.Insights).ServeHTTP)
				r.Get("/ai/review/{symbol}", review.New(logger, d.Insights).ServeHTTP)
				r.Get("/ai/sentiment/{symbol}", sentiment.New(logger, d.Insights).ServeHTTP)
				r.Get("/ai/rating/{symbol}", rating.New(logger, d.Insights).ServeHTTP)
				r.Get("/ai/news-summary/{symbol}", newssummary.New(logger, d.Insights).ServeHTTP)
				r.Post("/ai/compare", compare.New(logger, d.Insights).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
