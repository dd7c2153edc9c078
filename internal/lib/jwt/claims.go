// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// SessionClaims расширяет стандартные claims JWT, добавляя username и email
// пользователя; идентификатор пользователя хранится в поле Subject.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims описывает пользовательские данные, хранящиеся в JWT сессии.
type SessionClaims struct {
	Username             string `json:"username"` // Имя пользователя
	Email                string `json:"email"`    // Электронная почта
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов сессии.
type Maker interface {
	// GenerateToken создает токен для пользователя с указанным uid, username и email.
	GenerateToken(userUID, username, email string) (string, error)
	// ParseToken возвращает *SessionClaims, если токен корректен и не истек.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
