package tasktracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/task-tracker/docs"
	"github.com/magabrotheeeer/task-tracker/internal/cache"
	"github.com/magabrotheeeer/task-tracker/internal/config"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/read"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/update"
	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/task-tracker/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-tracker/internal/services/task"
	"github.com/magabrotheeeer/task-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.Service, taskService *taskservice.Service,
	jwtMaker jwt.Maker, db *repository.Storage, cacheRedis *cache.Cache, secureCookies bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService, cfg.TokenTTL, secureCookies).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, cfg.TokenTTL, secureCookies).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, secureCookies).ServeHTTP)
		r.Get("/health", health.New(logger, db, cacheRedis).ServeHTTP)

		// Группа с аутентификацией по cookie сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(logger, jwtMaker))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/tasks", create.New(logger, taskService).ServeHTTP)
			r.Get("/tasks", list.New(logger, taskService).ServeHTTP)
			r.Get("/tasks/{id}", read.New(logger, taskService).ServeHTTP)
			r.Put("/tasks/{id}", update.New(logger, taskService).ServeHTTP)
			r.Delete("/tasks/{id}", remove.New(logger, taskService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
