// Package models содержит доменные структуры ProfitPath: запись пользователя
// с избранными тикерами, идентичность из сессии, данные рынка и ответы
// AI-сервиса. Структуры используются в бизнес‑логике, хранилище и HTTP-слое.
package models

import (
	"strings"
	"time"
)

// MaxFavorites - предельный размер списка избранных тикеров пользователя.
const MaxFavorites = 50

// User представляет зарегистрированного пользователя и его избранное.
//
// Username и Email уникальны без учёта регистра и не меняются после создания.
type User struct {
	ID           string    `json:"id" validate:"required"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email" validate:"required"`
	Username     string    `json:"username" validate:"required"`
	PasswordHash string    `json:"passwordHash" validate:"required"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DisplayName возвращает имя для отображения: "Имя Фамилия" или username.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Profile возвращает публичное представление пользователя без хэша пароля.
func (u *User) Profile() Profile {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		Favorites: favorites,
		CreatedAt: u.CreatedAt,
	}
}

// Profile - данные пользователя, которые можно отдавать клиенту.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity - личность пользователя, восстановленная из сессионного токена.
// Авторитетным является только UserID, Name и Email носят справочный характер.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// RegisterInput - входные данные регистрации, все поля обязательны.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}
