// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
)

// Pinger описывает зависимость, доступность которой проверяет обработчик.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает запросы проверки состояния сервиса.
type Handler struct {
	log     *slog.Logger
	storage Pinger
	cache   Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, storage Pinger, cache Pinger) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
		cache:   cache,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния сервиса
// @Description Проверяет доступность базы данных и кеша
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервис работает"
// @Failure 503 {object} map[string]any "База данных или кеш недоступны"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health.ServeHTTP"
	log := h.log.With(slog.String("op", op))

	if err := h.storage.Ping(r.Context()); err != nil {
		log.Error("storage is unavailable", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]any{"status": "unavailable"})
		return
	}
	if err := h.cache.Ping(r.Context()); err != nil {
		log.Error("cache is unavailable", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]any{"status": "unavailable"})
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, map[string]any{
		"status": "ok",
	})
}
