// Package tasktracker собирает и запускает HTTP-сервис трекера задач.
package tasktracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/task-tracker/internal/cache"
	"github.com/magabrotheeeer/task-tracker/internal/config"
	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/task-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/task-tracker/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-tracker/internal/services/task"
	"github.com/magabrotheeeer/task-tracker/internal/storage/repository"
)

// App содержит собранный HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: хранилище, миграции, кэш, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is empty")
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker)
	taskService := taskservice.New(db, cacheRedis, cfg.CacheTTL, logger)

	secureCookies := cfg.Env == "prod"

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, taskService, jwtMaker, db, cacheRedis, secureCookies)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает сервер и блокируется до отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
