// Package session управляет cookie с сессионным токеном: установка после
// входа, очистка при выходе и чтение в Auth Gate. Cookie недоступна
// скриптам страницы (HttpOnly) и не уходит на сторонние сайты (SameSite=Lax).
package session

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

// DefaultCookieName - имя cookie по умолчанию.
const DefaultCookieName = "pp_auth"

// Cookies выставляет и читает сессионную cookie.
type Cookies struct {
	name   string
	maxAge time.Duration
	secure bool
}

// NewCookies создаёт Cookies. secure включается в боевом окружении.
func NewCookies(name string, maxAge time.Duration, secure bool) *Cookies {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookies{
		name:   name,
		maxAge: maxAge,
		secure: secure,
	}
}

// Set кладёт токен в cookie на срок жизни сессии.
func (c *Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		Expires:  time.Now().Add(c.maxAge),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear удаляет cookie на клиенте.
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read достаёт токен из запроса.
func (c *Cookies) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", models.ErrUnauthenticated
	}
	return cookie.Value, nil
}
