package login

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

	"github.com/magabrotheeeer/task-tracker/internal/lib/session"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, identifier, rawPassword string) (*models.User, string, error) {
	args := m.Called(ctx, identifier, rawPassword)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name: "успешный вход по имени пользователя",
			body: `{"identifier":"testuser","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "secret123").
					Return(&models.User{UID: "uid-1", Username: "testuser", Email: "user@example.com"}, "token-1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"testuser"`,
			expectCookie:   true,
		},
		{
			name: "успешный вход по email",
			body: `{"identifier":"user@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "secret123").
					Return(&models.User{UID: "uid-1", Username: "testuser", Email: "user@example.com"}, "token-1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"user@example.com"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "отсутствует identifier",
			body:           `{"password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Identifier is a required field`,
		},
		{
			name: "неверные учетные данные",
			body: `{"identifier":"testuser","password":"wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "wrong").
					Return(nil, "", models.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name: "несуществующий пользователь дает тот же ответ",
			body: `{"identifier":"ghost","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "ghost", "secret123").
					Return(nil, "", models.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name: "ошибка сервиса",
			body: `{"identifier":"testuser","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "secret123").
					Return(nil, "", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to login"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, time.Hour, false)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			var authCookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == session.CookieName {
					authCookie = c
				}
			}
			if tt.expectCookie {
				assert.NotNil(t, authCookie)
				assert.Equal(t, "token-1", authCookie.Value)
			} else {
				assert.Nil(t, authCookie)
			}

			mockService.AssertExpectations(t)
		})
	}
}
