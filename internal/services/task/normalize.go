package task

import (
	"strings"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Форматы, в которых принимается срок выполнения. Значение нормализуется
// к каноническому моменту времени в UTC.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

type normalized struct {
	title       string
	description string
	dueDate     *time.Time
}

// normalize проверяет и приводит поля запроса: строки обрезаются по краям
// и не могут стать пустыми, срок выполнения разбирается из строки.
// Нарушение возвращается как *models.ValidationError с сообщением,
// называющим конкретное поле; хранилище при этом не затрагивается.
func normalize(req models.RawTask) (normalized, error) {
	var norm normalized

	norm.title = strings.TrimSpace(req.Title)
	if norm.title == "" {
		return norm, models.NewValidationError("field title is required")
	}
	norm.description = strings.TrimSpace(req.Description)
	if norm.description == "" {
		return norm, models.NewValidationError("field description is required")
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return norm, err
	}
	norm.dueDate = due
	return norm, nil
}

// parseDueDate разбирает трёхзначное состояние поля dueDate.
// Отсутствующий ключ и явный null оба дают nil: чем они различаются —
// оставить прежний срок или очистить его — решает вызывающая сторона
// по признаку Present.
func parseDueDate(d models.OptionalDate) (*time.Time, error) {
	if !d.Present || d.Raw == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*d.Raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			utc := ts.UTC()
			return &utc, nil
		}
	}
	return nil, models.NewValidationError("field dueDate must be a valid date")
}
