// Package task содержит бизнес-логику работы с задачами: нормализацию
// входных данных, операции хранилища в рамках владельца и кеширование
// списка задач.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Repository определяет методы для работы с задачами в хранилище.
type Repository interface {
	// CreateTask добавляет новую задачу и возвращает её с выданным id.
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	// ReadTask возвращает задачу владельца по id.
	ReadTask(ctx context.Context, id, ownerUID string) (*models.Task, error)
	// ListTasks возвращает все задачи владельца в порядке создания.
	ListTasks(ctx context.Context, ownerUID string) ([]*models.Task, error)
	// UpdateTask заменяет поля задачи владельца; due_date только при setDueDate.
	UpdateTask(ctx context.Context, id, ownerUID string, task models.Task, setDueDate bool, updatedAt time.Time) (*models.Task, error)
	// RemoveTask удаляет задачу владельца и возвращает число удалённых строк.
	RemoveTask(ctx context.Context, id, ownerUID string) (int, error)
}

// Cache описывает методы для кэширования списка задач.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с задачами.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
	flight   singleflight.Group
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func listCacheKey(ownerUID string) string {
	return fmt.Sprintf("tasks:%s", ownerUID)
}

// Create нормализует данные запроса и создает задачу владельца.
// Отсутствующий срок выполнения нормализуется в null.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.RawTask) (*models.Task, error) {
	norm, err := normalize(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := models.Task{
		OwnerUID:    ownerUID,
		Title:       norm.title,
		Description: norm.description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     norm.dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx, ownerUID)
	return created, nil
}

// Read возвращает задачу владельца. Некорректный id означает "не найдено",
// как и id чужой задачи.
func (s *Service) Read(ctx context.Context, id, ownerUID string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrTaskNotFound
	}
	return s.repo.ReadTask(ctx, id, ownerUID)
}

// List возвращает все задачи владельца, по возможности из кеша.
// Одновременные промахи по одному владельцу схлопываются в один запрос
// к хранилищу через singleflight.
func (s *Service) List(ctx context.Context, ownerUID string) ([]*models.Task, error) {
	key := listCacheKey(ownerUID)

	var cached []*models.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read task list from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		tasks, err := s.repo.ListTasks(ctx, ownerUID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, tasks, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache task list", slog.String("key", key), sl.Err(err))
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*models.Task), nil
}

// Update нормализует данные запроса и полностью заменяет поля задачи
// владельца. Срок выполнения меняется только при явно переданном ключе:
// отсутствие ключа сохраняет прежнее значение, null или пустая строка
// очищают его.
func (s *Service) Update(ctx context.Context, id, ownerUID string, req models.RawTask) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrTaskNotFound
	}
	norm, err := normalize(req)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       norm.title,
		Description: norm.description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     norm.dueDate,
	}
	updated, err := s.repo.UpdateTask(ctx, id, ownerUID, task, req.DueDate.Present, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx, ownerUID)
	return updated, nil
}

// Remove удаляет задачу владельца. Повторное удаление того же id
// возвращает models.ErrTaskNotFound, а не внутреннюю ошибку.
func (s *Service) Remove(ctx context.Context, id, ownerUID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrTaskNotFound
	}
	count, err := s.repo.RemoveTask(ctx, id, ownerUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrTaskNotFound
	}
	s.invalidateList(ctx, ownerUID)
	return nil
}

func (s *Service) invalidateList(ctx context.Context, ownerUID string) {
	key := listCacheKey(ownerUID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate task list cache", slog.String("key", key), sl.Err(err))
	}
}
