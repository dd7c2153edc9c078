// Package list реализует HTTP-обработчик получения списка задач пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики получения списка задач.
type Service interface {
	List(ctx context.Context, ownerUID string) ([]*models.Task, error)
}

// Handler обрабатывает HTTP-запросы на список задач текущего пользователя.
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
// @Summary Список задач
// @Description Возвращает все задачи текущего пользователя в порядке создания
// @Tags Tasks
// @Produce  json
// @Success 200 {array} models.Task "Список задач, пустой массив если задач нет"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при получении списка"
// @Router /tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

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

	tasks, err := h.service.List(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tasks"))
		return
	}

	log.Info("tasks listed", slog.Int("count", len(tasks)))
	render.JSON(w, r, tasks)
}
