// Package logout реализует HTTP-обработчик выхода пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/task-tracker/internal/lib/session"
)

// Handler обрабатывает HTTP-запросы выхода: сбрасывает cookie сессии.
// Выполняется безусловно и всегда успешно, даже без активной сессии.
type Handler struct {
	log           *slog.Logger
	secureCookies bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, secureCookies bool) *Handler {
	return &Handler{
		log:           log,
		secureCookies: secureCookies,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Сбрасывает cookie сессии независимо от ее валидности
// @Tags Auth
// @Produce  json
// @Success 204 "Сессия завершена"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session.Clear(w, h.secureCookies)

	log.Info("logout success")
	w.WriteHeader(http.StatusNoContent)
}
