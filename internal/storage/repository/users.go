package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Имена уникальных индексов по lower(username)/lower(email). По ним
// нарушение уникальности при вставке классифицируется в конкретную
// ошибку: проверка выполняется на записи, а не предварительным чтением,
// чтобы закрыть гонку между проверкой и вставкой.
const (
	usernameUniqueConstraint = "users_username_lower_unique"
	emailUniqueConstraint    = "users_email_lower_unique"
)

// CreateUser сохраняет нового пользователя и возвращает запись с
// идентификатором и метками времени, выставленными базой.
func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid, created_at, updated_at`
	err := s.DB.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&u.UID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case usernameUniqueConstraint:
				return nil, models.ErrUsernameTaken
			case emailUniqueConstraint:
				return nil, models.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByIdentifier возвращает пользователя по email или username,
// сравнение в обоих случаях без учета регистра.
func (s *Storage) FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	const op = "storage.FindUserByIdentifier"

	normalized := strings.ToLower(strings.TrimSpace(identifier))
	query := `SELECT uid, username, email, password_hash, created_at, updated_at
			  FROM users
			  WHERE lower(email) = $1 OR lower(username) = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, normalized).
		Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByUID возвращает пользователя по его uid.
func (s *Storage) FindUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.FindUserByUID"

	query := `SELECT uid, username, email, password_hash, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, uid).
		Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// EmailTaken проверяет, занят ли email без учета регистра.
func (s *Storage) EmailTaken(ctx context.Context, email string) (bool, error) {
	const op = "storage.EmailTaken"

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UsernameTaken проверяет, занято ли имя пользователя без учета регистра.
func (s *Storage) UsernameTaken(ctx context.Context, username string) (bool, error) {
	const op = "storage.UsernameTaken"

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1))`
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
