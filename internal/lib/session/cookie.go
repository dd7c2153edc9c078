// Package session управляет транспортом токена сессии через cookie.
//
// Токен передается только в http-only cookie: не в заголовках и не в теле.
// Cookie помечается SameSite=Lax, Secure в продакшене, с Path=/ и временем
// жизни, равным TTL токена.
package session

import (
	"net/http"
	"time"
)

// CookieName имя cookie с токеном сессии.
const CookieName = "auth_token"

// Set записывает токен сессии в cookie ответа.
func Set(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// Clear сбрасывает cookie сессии. Выполняется безусловно:
// logout не проверяет валидность текущего токена.
func Clear(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		Path:     "/",
		MaxAge:   -1,
	})
}

// Token извлекает токен сессии из cookie запроса.
func Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
