package task

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockRepository реализует интерфейс task.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockRepository) ReadTask(ctx context.Context, id, ownerUID string) (*models.Task, error) {
	args := m.Called(ctx, id, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockRepository) ListTasks(ctx context.Context, ownerUID string) ([]*models.Task, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockRepository) UpdateTask(ctx context.Context, id, ownerUID string, task models.Task, setDueDate bool, updatedAt time.Time) (*models.Task, error) {
	args := m.Called(ctx, id, ownerUID, task, setDueDate, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockRepository) RemoveTask(ctx context.Context, id, ownerUID string) (int, error) {
	args := m.Called(ctx, id, ownerUID)
	return args.Int(0), args.Error(1)
}

// noopCache — кеш, который всегда промахивается и молча принимает записи.
type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ any) (bool, error)          { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }
func (noopCache) Invalidate(_ context.Context, _ string) error                  { return nil }

func newTestService(repo *MockRepository) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, noopCache{}, time.Minute, logger)
}

func rawTask(mutate func(*models.RawTask)) models.RawTask {
	req := models.RawTask{
		Title:       "Write report",
		Description: "draft v1",
		Status:      models.StatusTodo,
		Priority:    models.PriorityMedium,
	}
	if mutate != nil {
		mutate(&req)
	}
	return req
}

func strptr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ownerUID := uuid.New().String()

	t.Run("успешное создание с обрезкой полей", func(t *testing.T) {
		repo := new(MockRepository)
		var stored models.Task
		repo.On("CreateTask", mock.Anything, mock.AnythingOfType("models.Task")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(models.Task)
			}).
			Return(&models.Task{ID: uuid.New().String()}, nil)

		service := newTestService(repo)
		req := rawTask(func(r *models.RawTask) {
			r.Title = "  Write report  "
			r.Description = "  draft v1 "
		})

		_, err := service.Create(context.Background(), ownerUID, req)
		require.NoError(t, err)
		assert.Equal(t, "Write report", stored.Title)
		assert.Equal(t, "draft v1", stored.Description)
		assert.Equal(t, ownerUID, stored.OwnerUID)
		// Без ключа dueDate срок нормализуется в null.
		assert.Nil(t, stored.DueDate)
		// Метки времени создания и изменения совпадают.
		assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	})

	t.Run("пустой title после обрезки", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo)

		_, err := service.Create(context.Background(), ownerUID, rawTask(func(r *models.RawTask) {
			r.Title = "   "
		}))

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Message, "title")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("некорректная дата", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo)

		_, err := service.Create(context.Background(), ownerUID, rawTask(func(r *models.RawTask) {
			r.DueDate = models.OptionalDate{Present: true, Raw: strptr("not-a-date")}
		}))

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Message, "dueDate")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("дата нормализуется к UTC", func(t *testing.T) {
		repo := new(MockRepository)
		var stored models.Task
		repo.On("CreateTask", mock.Anything, mock.AnythingOfType("models.Task")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(models.Task)
			}).
			Return(&models.Task{ID: uuid.New().String()}, nil)

		service := newTestService(repo)
		_, err := service.Create(context.Background(), ownerUID, rawTask(func(r *models.RawTask) {
			r.DueDate = models.OptionalDate{Present: true, Raw: strptr("2025-03-01T10:00:00+03:00")}
		}))
		require.NoError(t, err)
		require.NotNil(t, stored.DueDate)
		assert.Equal(t, time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC), *stored.DueDate)
	})
}

func TestService_Read(t *testing.T) {
	ownerUID := uuid.New().String()

	t.Run("некорректный id означает не найдено", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo)

		_, err := service.Read(context.Background(), "not-a-uuid", ownerUID)
		assert.ErrorIs(t, err, models.ErrTaskNotFound)
		repo.AssertNotCalled(t, "Read")
	})

	t.Run("чужая задача неотличима от отсутствующей", func(t *testing.T) {
		id := uuid.New().String()
		repo := new(MockRepository)
		repo.On("ReadTask", mock.Anything, id, ownerUID).Return(nil, models.ErrTaskNotFound)
		service := newTestService(repo)

		_, err := service.Read(context.Background(), id, ownerUID)
		assert.ErrorIs(t, err, models.ErrTaskNotFound)
		repo.AssertExpectations(t)
	})
}

func TestService_Update_DueDateTriState(t *testing.T) {
	ownerUID := uuid.New().String()
	id := uuid.New().String()

	tests := []struct {
		name        string
		dueDate     models.OptionalDate
		wantSetDue  bool
		wantDueNil  bool
		wantInvalid bool
	}{
		{
			name:       "отсутствующий ключ не трогает срок",
			dueDate:    models.OptionalDate{},
			wantSetDue: false,
		},
		{
			name:       "явный null очищает срок",
			dueDate:    models.OptionalDate{Present: true, Raw: nil},
			wantSetDue: true,
			wantDueNil: true,
		},
		{
			name:       "пустая строка очищает срок",
			dueDate:    models.OptionalDate{Present: true, Raw: strptr("")},
			wantSetDue: true,
			wantDueNil: true,
		},
		{
			name:       "корректная дата устанавливает срок",
			dueDate:    models.OptionalDate{Present: true, Raw: strptr("2025-06-01")},
			wantSetDue: true,
		},
		{
			name:        "некорректная дата отклоняется без записи",
			dueDate:     models.OptionalDate{Present: true, Raw: strptr("tomorrow")},
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if !tt.wantInvalid {
				repo.On("UpdateTask", mock.Anything, id, ownerUID, mock.AnythingOfType("models.Task"),
					tt.wantSetDue, mock.AnythingOfType("time.Time")).
					Return(&models.Task{ID: id}, nil)
			}
			service := newTestService(repo)

			req := rawTask(func(r *models.RawTask) {
				r.DueDate = tt.dueDate
			})
			_, err := service.Update(context.Background(), id, ownerUID, req)

			if tt.wantInvalid {
				var validationErr *models.ValidationError
				require.ErrorAs(t, err, &validationErr)
				repo.AssertNotCalled(t, "Update")
				return
			}
			require.NoError(t, err)
			if tt.wantSetDue && tt.wantDueNil {
				passed := repo.Calls[0].Arguments.Get(3).(models.Task)
				assert.Nil(t, passed.DueDate)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Remove(t *testing.T) {
	ownerUID := uuid.New().String()
	id := uuid.New().String()

	t.Run("успешное удаление", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveTask", mock.Anything, id, ownerUID).Return(1, nil)
		service := newTestService(repo)

		assert.NoError(t, service.Remove(context.Background(), id, ownerUID))
		repo.AssertExpectations(t)
	})

	t.Run("повторное удаление дает не найдено", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveTask", mock.Anything, id, ownerUID).Return(0, nil)
		service := newTestService(repo)

		assert.ErrorIs(t, service.Remove(context.Background(), id, ownerUID), models.ErrTaskNotFound)
	})

	t.Run("некорректный id", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo)

		assert.ErrorIs(t, service.Remove(context.Background(), "123", ownerUID), models.ErrTaskNotFound)
		repo.AssertNotCalled(t, "Remove")
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveTask", mock.Anything, id, ownerUID).Return(0, errors.New("db error"))
		service := newTestService(repo)

		err := service.Remove(context.Background(), id, ownerUID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrTaskNotFound)
	})
}

func TestService_List_UsesCache(t *testing.T) {
	ownerUID := uuid.New().String()
	repo := new(MockRepository)
	tasks := []*models.Task{{ID: uuid.New().String(), Title: "Write report"}}
	repo.On("ListTasks", mock.Anything, ownerUID).Return(tasks, nil).Once()

	service := newTestService(repo)
	got, err := service.List(context.Background(), ownerUID)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
	repo.AssertExpectations(t)
}
