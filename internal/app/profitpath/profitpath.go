// Package profitpath собирает зависимости сервиса и запускает HTTP-сервер.
package profitpath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/profitpath/internal/cache"
	"github.com/magabrotheeeer/profitpath/internal/config"
	"github.com/magabrotheeeer/profitpath/internal/http/session"
	"github.com/magabrotheeeer/profitpath/internal/lib/jwt"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/llm"
	"github.com/magabrotheeeer/profitpath/internal/marketdata"
	"github.com/magabrotheeeer/profitpath/internal/metrics"
	authservice "github.com/magabrotheeeer/profitpath/internal/services/auth"
	"github.com/magabrotheeeer/profitpath/internal/services/favorites"
	"github.com/magabrotheeeer/profitpath/internal/services/insights"
	"github.com/magabrotheeeer/profitpath/internal/services/market"
	"github.com/magabrotheeeer/profitpath/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App - HTTP-сервер ProfitPath со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	cache  *cache.Cache
}

// New собирает сервис по конфигу. Без ключа Polygon или Gemini
// соответствующие эндпоинты отвечают 503, без адреса redis кеш отключён.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "profitpath.New"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store, err := storage.New(cfg.UsersPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("users storage", slog.String("path", store.Path()))

	maker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New()

	var (
		marketCache market.Cache = cache.Nop{}
		redisCache  *cache.Cache
	)
	if cfg.AddressRedis != "" {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, market cache disabled", sl.Err(err))
		} else {
			marketCache = redisCache
		}
	}

	// Интерфейсы остаются nil без ключей: сервисы отвечают ErrServiceDisabled.
	var provider market.Provider
	if cfg.PolygonAPIKey != "" {
		provider = marketdata.NewClient(cfg.PolygonAPIKey, cfg.MarketData.BaseURL, cfg.MarketData.Timeout, m)
	}

	var gen insights.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, llm.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.Model,
			Timeout: cfg.LLM.Timeout,
		}, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		gen = gemini
	}

	marketService := market.NewService(provider, marketCache, cfg.CacheTTL, logger)

	// Срок cookie берётся у maker, чтобы cookie и токен истекали одновременно.

	deps := Dependencies{
		Auth:      authservice.NewAuthService(store, maker, m, logger),
		Favorites: favorites.NewService(store, logger),
		Market:    marketService,
		Insights:  insights.NewService(gen, marketService, logger),
		Cookies:   session.NewCookies(cfg.CookieName, maker.TTL(), cfg.IsProd()),
		Limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		Metrics:   m,
		Features: map[string]bool{
			"market_data": provider != nil,
			"ai":          gen != nil,
			"cache":       redisCache != nil,
		},
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  redisCache,
	}, nil
}

// Run запускает сервер и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
}
