// Package config предоставялет структуры и функцию для парсинга и загрузки конфига.
//
// Конфиг читается из YAML-файла по пути CONFIG_PATH (если задан), любое поле
// можно переопределить переменной окружения. Секрет подписи сессий обязателен
// и не имеет значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal - локальная разработка.
	EnvLocal = "local"
	// EnvDev - тестовый стенд.
	EnvDev = "dev"
	// EnvProd - боевое окружение: cookie помечается Secure.
	EnvProd = "prod"
)

var (
	// ErrMissingSecret - не задан секрет подписи сессионных токенов.
	ErrMissingSecret = errors.New("session jwt secret is not set (JWT_SECRET)")
	// ErrInvalidTTL - срок жизни сессии не положительный.
	ErrInvalidTTL = errors.New("session token ttl must be positive (SESSION_TTL)")
	// ErrUpstreamTimeout - таймаут внешнего провайдера не меньше таймаута
	// записи HTTP-сервера: ответ с ошибкой провайдера не успеет уйти клиенту.
	ErrUpstreamTimeout = errors.New("upstream timeout must be shorter than http timeout")
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Session         `yaml:"session"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	MarketData      `yaml:"market_data"`
	LLM             `yaml:"llm"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Session структура для работы с сессионным jwt-токеном и cookie
type Session struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"SESSION_TTL" env-default:"168h"`
	CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"pp_auth"`
}

// Storage структура для настройки файлового хранилища пользователей
type Storage struct {
	UsersPath string `yaml:"users_path" env:"USERS_PATH" env-default:"data/users.json"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш рыночных данных.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
}

// MarketData структура для настройки провайдера рыночных данных (Polygon)
type MarketData struct {
	PolygonAPIKey string        `yaml:"polygon_api_key" env:"POLYGON_API_KEY"`
	BaseURL       string        `yaml:"base_url" env:"POLYGON_BASE_URL" env-default:"https://api.polygon.io"`
	Timeout       time.Duration `yaml:"timeout" env:"POLYGON_TIMEOUT" env-default:"10s"`
	CacheTTL      time.Duration `yaml:"cache_ttl" env:"MARKET_CACHE_TTL" env-default:"1m"`
}

// LLM структура для настройки AI-провайдера (Gemini)
type LLM struct {
	GeminiAPIKey string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	Timeout      time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"20s"`
}

// RateLimit структура для ограничения частоты дорогих AI-запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"AI_RATE_RPS" env-default:"1"`
	Burst int     `yaml:"burst" env:"AI_RATE_BURST" env-default:"3"`
}

// Load читает конфиг из файла CONFIG_PATH (если задан) и окружения.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate проверяет обязательные настройки.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return ErrMissingSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, c.TokenTTL)
	}
	if c.TimeoutHTTP > 0 {
		if c.LLM.Timeout >= c.TimeoutHTTP {
			return fmt.Errorf("%w: llm %s, http %s", ErrUpstreamTimeout, c.LLM.Timeout, c.TimeoutHTTP)
		}
		if c.MarketData.Timeout >= c.TimeoutHTTP {
			return fmt.Errorf("%w: market data %s, http %s", ErrUpstreamTimeout, c.MarketData.Timeout, c.TimeoutHTTP)
		}
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	return nil
}

// IsProd сообщает, запущен ли сервис в боевом окружении.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"  CookieName: %s\n"+
			"Storage:\n"+
			"  UsersPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"MarketData:\n"+
			"  BaseURL: %s\n"+
			"  APIKey: %s\n"+
			"  CacheTTL: %s\n"+
			"LLM:\n"+
			"  Model: %s\n"+
			"  APIKey: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.CookieName,
		c.UsersPath,
		c.AddressRedis,
		c.DB,
		c.BaseURL,
		mask(c.PolygonAPIKey),
		c.CacheTTL,
		c.Model,
		mask(c.GeminiAPIKey),
	)
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "***"
}
