// Package docs регистрирует OpenAPI-описание ProfitPath API для /docs/*.
//
// Шаблон повторяет аннотации godoc обработчиков; при изменении маршрутов
// его можно перегенерировать командой swag init -g cmd/profitpath/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "Cookie",
            "in": "header",
            "description": "Session cookie pp_auth set by POST /login"
        }
    },
    "paths": {
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/register.Request"}}],
                "responses": {
                    "201": {"description": "Профиль созданного пользователя", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Пользователь уже существует", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}],
                "responses": {
                    "200": {"description": "Профиль, cookie pp_auth установлена", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверный пароль", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Выход пользователя",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Сессия завершена", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/me": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Auth"],
                "summary": "Текущий пользователь",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Профиль", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/favorites": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Favorites"],
                "summary": "Избранные тикеры",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Список тикеров", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "tags": ["Favorites"],
                "summary": "Добавить тикер в избранное",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/add.Request"}}],
                "responses": {
                    "200": {"description": "Обновлённый список", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный тикер", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/favorites/{symbol}": {
            "delete": {
                "security": [{"CookieAuth": []}],
                "tags": ["Favorites"],
                "summary": "Удалить тикер из избранного",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "Обновлённый список", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/favorites/summary": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Favorites"],
                "summary": "Сводка по избранному",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Сводка", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/market/quote/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Market"],
                "summary": "Котировка",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/market/ticker/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Market"],
                "summary": "Сводка по тикеру",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/market/historical/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Market"],
                "summary": "История цен",
                "parameters": [
                    {"type": "string", "in": "path", "name": "symbol", "required": true},
                    {"type": "string", "in": "query", "name": "from"},
                    {"type": "string", "in": "query", "name": "to"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/market/news": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Market"],
                "summary": "Новости",
                "parameters": [
                    {"type": "string", "in": "query", "name": "tickers"},
                    {"type": "string", "in": "query", "name": "q"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/market/movers": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["Market"],
                "summary": "Лидеры дня",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/ask": {
            "post": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Вопрос AI-аналитику",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ask.Request"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/picks": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Идеи дня",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/review/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Обзор компании",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/rating/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Рейтинг тикера",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/news-summary/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Пересказ новостей",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/sentiment/{symbol}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Настроение рынка по тикеру",
                "parameters": [{"type": "string", "in": "path", "name": "symbol", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/compare": {
            "post": {
                "security": [{"CookieAuth": []}],
                "tags": ["AI"],
                "summary": "Сравнение тикеров",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/compare.Request"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Проверка живости",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "data": {}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Error"},
                "error": {"type": "string", "example": "invalid request body"}
            }
        },
        "register.Request": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "username", "password"],
            "properties": {
                "firstName": {"type": "string", "maxLength": 100},
                "lastName": {"type": "string", "maxLength": 100},
                "email": {"type": "string"},
                "username": {"type": "string", "minLength": 3, "maxLength": 50},
                "password": {"type": "string", "minLength": 8, "maxLength": 72}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["login", "password"],
            "properties": {
                "login": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "add.Request": {
            "type": "object",
            "required": ["symbol"],
            "properties": {"symbol": {"type": "string", "example": "AAPL"}}
        },
        "ask.Request": {
            "type": "object",
            "required": ["question"],
            "properties": {"question": {"type": "string", "maxLength": 2000}}
        },
        "compare.Request": {
            "type": "object",
            "required": ["symbols"],
            "properties": {"symbols": {"type": "array", "minItems": 2, "maxItems": 5, "items": {"type": "string"}}}
        }
    }
}`

// SwaggerInfo содержит метаданные API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ProfitPath API",
	Description:      "Список наблюдения за акциями: аккаунты, избранные тикеры, рыночные данные и AI-комментарии.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
