package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id, ownerUID string, req models.RawTask) (*models.Task, error) {
	args := m.Called(ctx, id, ownerUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

const taskID = "3f1b9a52-8f7d-4a6e-9c1b-2d5e8f7a6b4c"

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		ownerUID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное обновление без ключа dueDate",
			body:     `{"title":"Report","description":"d","status":"done","priority":"low"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, taskID, "uid-1", mock.MatchedBy(func(req models.RawTask) bool {
					return req.Status == models.StatusDone && !req.DueDate.Present
				})).Return(&models.Task{ID: taskID, Title: "Report", Status: models.StatusDone, Priority: models.PriorityLow}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"done"`,
		},
		{
			name:     "явный null сбрасывает срок выполнения",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"low","dueDate":null}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, taskID, "uid-1", mock.MatchedBy(func(req models.RawTask) bool {
					return req.DueDate.Present && req.DueDate.Raw == nil
				})).Return(&models.Task{ID: taskID, Title: "Report", Status: models.StatusTodo, Priority: models.PriorityLow}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"dueDate":null`,
		},
		{
			name:           "нет авторизации",
			body:           `{"title":"Report","description":"d","status":"todo","priority":"low"}`,
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
			body:           `{"title":"Report","description":"d","status":"later","priority":"low"}`,
			ownerUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Status must be one of: todo in-progress done`,
		},
		{
			name:     "некорректная дата",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"low","dueDate":"not-a-date"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, taskID, "uid-1", mock.Anything).
					Return(nil, models.NewValidationError("field dueDate must be a valid date"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field dueDate must be a valid date"}`,
		},
		{
			name:     "задача не найдена",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"low"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, taskID, "uid-1", mock.Anything).
					Return(nil, models.ErrTaskNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"task not found"}`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"title":"Report","description":"d","status":"todo","priority":"low"}`,
			ownerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, taskID, "uid-1", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to update task"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/"+taskID, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", taskID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.ownerUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.ownerUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
