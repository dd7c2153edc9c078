// Package update реализует HTTP-обработчик обновления задачи по ID.
//
// Handler принимает JSON-запрос с полными данными задачи, валидирует их,
// извлекает владельца из контекста и ID из URL-параметров и возвращает
// обновленную задачу в формате JSON. Отсутствие ключа dueDate в теле
// оставляет срок выполнения без изменений.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления задачи.
type Service interface {
	Update(ctx context.Context, id, ownerUID string, req models.RawTask) (*models.Task, error)
}

// Handler обрабатывает HTTP-запросы обновления задачи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить задачу по ID
// @Description Обновляет данные задачи текущего пользователя по идентификатору
// @Tags Tasks
// @Accept  json
// @Produce  json
// @Param id path string true "ID задачи"
// @Param request body models.RawTask true "Обновленные данные задачи"
// @Success 200 {object} models.Task "Обновленная задача"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при обновлении"
// @Router /tasks/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.update"

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

	var req models.RawTask
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	task, err := h.service.Update(r.Context(), id, ownerUID, req)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Info("update rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(validationErr.Message))
		case errors.Is(err, models.ErrTaskNotFound):
			log.Info("task not found", slog.String("task_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("task not found"))
		default:
			log.Error("failed to update task", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update task"))
		}
		return
	}

	log.Info("task updated", slog.String("task_id", task.ID))
	render.JSON(w, r, task)
}
