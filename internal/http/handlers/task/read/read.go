// Package read реализует HTTP-обработчик получения задачи по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения задачи.
type Service interface {
	Read(ctx context.Context, id, ownerUID string) (*models.Task, error)
}

// Handler обрабатывает HTTP-запросы чтения задачи по идентификатору.
// Чужая или несуществующая задача дает одинаковый ответ 404.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить задачу по ID
// @Description Возвращает задачу текущего пользователя по идентификатору
// @Tags Tasks
// @Produce  json
// @Param id path string true "ID задачи"
// @Success 200 {object} models.Task "Задача"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении"
// @Router /tasks/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	task, err := h.service.Read(r.Context(), id, ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			log.Info("task not found", slog.String("task_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("task not found"))
			return
		}
		log.Error("failed to read task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read task"))
		return
	}

	log.Info("task read", slog.String("task_id", task.ID))
	render.JSON(w, r, task)
}
