// Package auth содержит бизнес-логику регистрации, входа и проверки сессий.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя; нарушение уникальности
	// возвращается как models.ErrEmailTaken или models.ErrUsernameTaken.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	// FindUserByIdentifier ищет пользователя по email или username без учета регистра.
	FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// EmailTaken проверяет занятость email без учета регистра.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// UsernameTaken проверяет занятость username без учета регистра.
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// Service отвечает за регистрацию, авторизацию и выпуск токенов сессии.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя и возвращает его вместе с токеном сессии.
//
// Предварительные проверки занятости email и username выполняются
// параллельно: между ними нет зависимости по порядку, это чистая
// оптимизация задержки. Гонку между проверкой и вставкой закрывает
// уникальный индекс хранилища, классифицируемый в CreateUser.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if n := utf8.RuneCountInString(username); n < 3 || n > 32 {
		return nil, "", models.NewValidationError("username must be between 3 and 32 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", models.NewValidationError("invalid email address")
	}
	if len(rawPassword) < 8 {
		return nil, "", models.NewValidationError("password must be at least 8 characters long")
	}

	g, gctx := errgroup.WithContext(ctx)
	var emailTaken, usernameTaken bool
	g.Go(func() error {
		var err error
		emailTaken, err = s.users.EmailTaken(gctx, email)
		return err
	})
	g.Go(func() error {
		var err error
		usernameTaken, err = s.users.UsernameTaken(gctx, username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if emailTaken {
		return nil, "", models.ErrEmailTaken
	}
	if usernameTaken {
		return nil, "", models.ErrUsernameTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, username, email, hashed)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Login проверяет identifier (email или username) и пароль пользователя
// и возвращает его вместе с новым токеном сессии. Неизвестный identifier
// и неверный пароль дают одну и ту же ошибку.
func (s *Service) Login(ctx context.Context, identifier, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.FindUserByIdentifier(ctx, identifier)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}
