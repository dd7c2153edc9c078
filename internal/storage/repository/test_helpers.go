package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/task-tracker/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его uid
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3) RETURNING uid`,
		username, email, "hashedpassword").Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateTask создает тестовую задачу и возвращает ее id
func (f *TestDataFactory) CreateTask(t *testing.T, ownerUID, title, status, priority string,
	dueDate *time.Time, createdAt time.Time) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO tasks
		(owner_uid, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`,
		ownerUID, title, "description", status, priority, dueDate, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и применяет к ней реальные миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	dbPort := nat.Port("5432/tcp")
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(dbPort),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("failed to terminate container: %s\n", err)
			}
		}
	}

	return storage, cleanup
}
