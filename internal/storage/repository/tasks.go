package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// CreateTask вставляет новую задачу и возвращает её с идентификатором,
// выданным базой. Метки времени приходят из переданной модели, поэтому
// createdAt и updatedAt совпадают с точностью до наносекунды.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	const op = "storage.CreateTask"

	query := `INSERT INTO tasks (owner_uid, title, description, status, priority, due_date,
			      created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query,
		task.OwnerUID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CreatedAt, task.UpdatedAt).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &task, nil
}

// ReadTask возвращает задачу по id в рамках владельца. Отсутствующая
// и чужая задача неразличимы: обе дают models.ErrTaskNotFound.
func (s *Storage) ReadTask(ctx context.Context, id, ownerUID string) (*models.Task, error) {
	const op = "storage.ReadTask"

	query := `SELECT id, owner_uid, title, description, status, priority, due_date,
			      created_at, updated_at
			  FROM tasks
			  WHERE id = $1 AND owner_uid = $2`
	var task models.Task
	var dueDate sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, id, ownerUID).Scan(
		&task.ID, &task.OwnerUID, &task.Title, &task.Description, &task.Status,
		&task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return &task, nil
}

// ListTasks возвращает все задачи владельца в порядке создания.
// id в сортировке стабилизирует порядок строк с одинаковым created_at.
func (s *Storage) ListTasks(ctx context.Context, ownerUID string) ([]*models.Task, error) {
	const op = "storage.ListTasks"

	query := `SELECT id, owner_uid, title, description, status, priority, due_date,
			      created_at, updated_at
			  FROM tasks
			  WHERE owner_uid = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Task, 0)
	for rows.Next() {
		var task models.Task
		var dueDate sql.NullTime
		if err := rows.Scan(&task.ID, &task.OwnerUID, &task.Title, &task.Description,
			&task.Status, &task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if dueDate.Valid {
			task.DueDate = &dueDate.Time
		}
		result = append(result, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTask полностью заменяет title, description, status и priority
// задачи владельца. due_date меняется только при setDueDate == true:
// отсутствие ключа в запросе оставляет сохранённый срок как есть.
func (s *Storage) UpdateTask(ctx context.Context, id, ownerUID string, task models.Task,
	setDueDate bool, updatedAt time.Time) (*models.Task, error) {
	const op = "storage.UpdateTask"

	query := `UPDATE tasks
			  SET title = $1, description = $2, status = $3, priority = $4, updated_at = $5
			  WHERE id = $6 AND owner_uid = $7
			  RETURNING id, owner_uid, title, description, status, priority, due_date,
			      created_at, updated_at`
	args := []any{task.Title, task.Description, task.Status, task.Priority, updatedAt, id, ownerUID}
	if setDueDate {
		query = `UPDATE tasks
				 SET title = $1, description = $2, status = $3, priority = $4, updated_at = $5,
				     due_date = $6
				 WHERE id = $7 AND owner_uid = $8
				 RETURNING id, owner_uid, title, description, status, priority, due_date,
				     created_at, updated_at`
		args = []any{task.Title, task.Description, task.Status, task.Priority, updatedAt,
			task.DueDate, id, ownerUID}
	}

	var updated models.Task
	var dueDate sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, args...).Scan(
		&updated.ID, &updated.OwnerUID, &updated.Title, &updated.Description,
		&updated.Status, &updated.Priority, &dueDate, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if dueDate.Valid {
		updated.DueDate = &dueDate.Time
	}
	return &updated, nil
}

// RemoveTask удаляет задачу владельца и возвращает количество удалённых строк.
func (s *Storage) RemoveTask(ctx context.Context, id, ownerUID string) (int, error) {
	const op = "storage.RemoveTask"

	query := `DELETE FROM tasks WHERE id = $1 AND owner_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
