// Package middlewarectx содержит middleware аутентификации и ограничения
// частоты запросов, а также типизированные ключи контекста запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/task-tracker/internal/lib/session"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
)

// Key тип ключей контекста запроса.
type Key string

// Ключи контекста, заполняемые после успешной проверки токена сессии.
const (
	UserUID  Key = "user_uid"
	Username Key = "username"
)

// JWTMiddleware создает middleware аутентификации по cookie сессии.
// Любой сбой проверки дает единый ответ 401 без уточнения причины.
func JWTMiddleware(log *slog.Logger, maker jwt.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := session.Token(r)
			if !ok {
				log.Info("session cookie missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			claims, err := maker.ParseToken(token)
			if err != nil {
				log.Info("invalid session token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.Subject)
			ctx = context.WithValue(ctx, Username, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
