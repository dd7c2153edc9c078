package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// FindTasksDueWithin возвращает незавершённые задачи, срок которых
// наступает в ближайшем окне, вместе с данными владельца для письма.
func (s *Storage) FindTasksDueWithin(ctx context.Context, within time.Duration) ([]*models.ReminderInfo, error) {
	const op = "storage.FindTasksDueWithin"

	query := `SELECT u.email, u.username, t.title, t.due_date
			  FROM tasks t
			  JOIN users u ON u.uid = t.owner_uid
			  WHERE t.status <> 'done'
			    AND t.due_date IS NOT NULL
			    AND t.due_date > now()
			    AND t.due_date <= now() + $1::interval`
	rows, err := s.DB.QueryContext(ctx, query, fmt.Sprintf("%d seconds", int(within.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var info models.ReminderInfo
		if err := rows.Scan(&info.Email, &info.Username, &info.Title, &info.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
