package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerUID string, req models.RawTask) (*models.Task, error) {
	args := m.Called(ctx, ownerUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		ownerUID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное создание задачи",
			body:     `{"title":"Report","description":"Quarterly report","status":"todo","priority":"high"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.MatchedBy(func(req models.RawTask) bool {
					return req.Title == "Report" && !req.DueDate.Present
				})).Return(&models.Task{
					ID:        "task-1",
					Title:     "Report",
					Status:    models.StatusTodo,
					Priority:  models.PriorityHigh,
					CreatedAt: now,
					UpdatedAt: now,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"task-1"`,
		},
		{
			name:           "нет авторизации",
			body:           `{"title":"Report","description":"d","status":"todo","priority":"high"}`,
			ownerUID:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"unauthorized"}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			ownerUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "недопустимый статус",
			body:           `{"title":"Report","description":"d","status":"later","priority":"high"}`,
			ownerUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Status must be one of: todo in-progress done`,
		},
		{
			name:           "недопустимый приоритет",
			body:           `{"title":"Report","description":"d","status":"todo","priority":"urgent"}`,
			ownerUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Priority must be one of: low medium high`,
		},
		{
			name:     "ошибка валидации из сервиса",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"high","dueDate":"not-a-date"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, models.NewValidationError("field dueDate must be a valid date"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field dueDate must be a valid date"}`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"high"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create task"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(tt.body))
			if tt.ownerUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.ownerUID)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
