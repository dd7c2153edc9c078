// Package signup реализует HTTP-обработчик регистрации новых пользователей.
package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/session"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации пользователя.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы регистрации пользователей.
//
// После успешной регистрации пользователь сразу аутентифицирован:
// токен сессии записывается в http-only cookie ответа.
type Handler struct {
	log           *slog.Logger
	service       Service
	validate      *validator.Validate
	tokenTTL      time.Duration
	secureCookies bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, tokenTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		validate:      validator.New(),
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового пользователя
// @Description Создает нового пользователя и устанавливает cookie сессии
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} models.User "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Info("registration rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(validationErr.Message))
		case errors.Is(err, models.ErrUsernameTaken):
			log.Info("registration conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(models.ErrUsernameTaken.Error()))
		case errors.Is(err, models.ErrEmailTaken):
			log.Info("registration conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(models.ErrEmailTaken.Error()))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	session.Set(w, token, h.tokenTTL, h.secureCookies)

	log.Info("register success", slog.String("username", user.Username), slog.String("user_uid", user.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, user)
}
