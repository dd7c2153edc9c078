// Package create реализует HTTP-обработчик создания задачи.
//
// Handler принимает JSON-запрос с данными задачи, валидирует их,
// извлекает владельца из контекста запроса и возвращает созданную
// задачу в формате JSON.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики создания задачи.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.RawTask) (*models.Task, error)
}

// Handler обрабатывает HTTP-запросы создания задачи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики задач
	validate *validator.Validate // Валидатор для проверки входных данных
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
// @Summary Создать задачу
// @Description Создает новую задачу текущего пользователя
// @Tags Tasks
// @Accept  json
// @Produce  json
// @Param request body models.RawTask true "Данные задачи"
// @Success 201 {object} models.Task "Задача создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании"
// @Router /tasks [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.create"

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

	task, err := h.service.Create(r.Context(), ownerUID, req)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			log.Info("task rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(validationErr.Message))
			return
		}
		log.Error("failed to create task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create task"))
		return
	}

	log.Info("task created", slog.String("task_id", task.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, task)
}
