// Package remove реализует HTTP-обработчик удаления задачи по ID.
package remove

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

// Service описывает интерфейс бизнес-логики удаления задачи.
type Service interface {
	Remove(ctx context.Context, id, ownerUID string) error
}

// Handler обрабатывает HTTP-запросы удаления задачи. Повторное удаление
// той же задачи дает 404: операция не идемпотентна по ответу.
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
// @Summary Удалить задачу по ID
// @Description Удаляет задачу текущего пользователя по идентификатору
// @Tags Tasks
// @Produce  json
// @Param id path string true "ID задачи"
// @Success 204 "Задача удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении"
// @Router /tasks/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.remove"

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
	if err := h.service.Remove(r.Context(), id, ownerUID); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			log.Info("task not found", slog.String("task_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("task not found"))
			return
		}
		log.Error("failed to delete task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete task"))
		return
	}

	log.Info("task deleted", slog.String("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}
