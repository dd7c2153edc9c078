// Package login реализует HTTP-обработчик входа пользователей.
package login

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

// Request — входные данные для входа. Identifier принимает
// имя пользователя или email без различия регистра.
type Request struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики входа пользователя.
type Service interface {
	Login(ctx context.Context, identifier, rawPassword string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы входа пользователей.
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
// @Summary Вход пользователя
// @Description Проверяет учетные данные и устанавливает cookie сессии
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя пользователя или email и пароль"
// @Success 200 {object} models.User "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при входе"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("identifier", req.Identifier))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	session.Set(w, token, h.tokenTTL, h.secureCookies)

	log.Info("login success", slog.String("username", user.Username), slog.String("user_uid", user.UID))
	render.JSON(w, r, user)
}
