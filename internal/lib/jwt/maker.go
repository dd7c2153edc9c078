package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается при любом дефекте токена: неверная подпись,
// истекший срок, некорректный формат. Причина намеренно не различается,
// чтобы ответ сервиса не подсказывал, какая именно проверка не прошла.
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken создает JWT с uid пользователя в Subject и заданными
// username и email, подписывая его секретным ключом. Время жизни токена
// определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userUID, username, email string) (string, error) {
	claims := SessionClaims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT, проверяет подпись и срок действия и возвращает
// SessionClaims. Любая ошибка проверки схлопывается в ErrInvalidToken.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
