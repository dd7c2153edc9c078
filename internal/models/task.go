// Package models содержит доменные структуры задач и пользователей,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"encoding/json"
	"time"
)

// Допустимые статусы задачи. Задача всегда находится ровно в одном статусе.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Допустимые приоритеты задачи.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task представляет основную модель задачи, используемую
// в бизнес-логике и хранилище. DueDate может быть nil —
// это означает, что срок выполнения не задан.
type Task struct {
	ID          string     `json:"id"`          // Уникальный идентификатор задачи
	Title       string     `json:"title"`       // Заголовок
	Description string     `json:"description"` // Описание
	Status      string     `json:"status"`      // todo | in-progress | done
	Priority    string     `json:"priority"`    // low | medium | high
	DueDate     *time.Time `json:"dueDate"`     // Срок выполнения, опционально
	CreatedAt   time.Time  `json:"createdAt"`   // Момент создания
	UpdatedAt   time.Time  `json:"updatedAt"`   // Момент последнего изменения
	OwnerUID    string     `json:"-"`           // Владелец задачи, наружу не отдается
}

// RawTask используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Task. Срок выполнения приходит
// в виде OptionalDate, чтобы отличать отсутствующий ключ от null.
type RawTask struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Status      string       `json:"status" validate:"required,oneof=todo in-progress done"`
	Priority    string       `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     OptionalDate `json:"dueDate"`
}

// OptionalDate различает три состояния поля dueDate в JSON-запросе:
// ключ отсутствует (Present == false), ключ задан как null или пустая
// строка (Present == true, Raw == nil или пустая строка) и ключ задан
// строкой с датой. Разбор строки в дату выполняет бизнес-логика.
type OptionalDate struct {
	Present bool
	Raw     *string
}

// UnmarshalJSON вызывается только при наличии ключа в теле запроса,
// поэтому сам факт вызова означает Present == true.
func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Present = true
	if string(data) == "null" {
		d.Raw = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Не строка и не null: сохраняем сырой токен, разбор даты
		// ниже по стеку вернет осмысленную ошибку валидации.
		raw := string(data)
		d.Raw = &raw
		return nil
	}
	d.Raw = &s
	return nil
}

// ReminderInfo содержит данные для письма-напоминания о приближающемся
// сроке выполнения задачи.
type ReminderInfo struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Title    string    `json:"title"`
	DueDate  time.Time `json:"due_date"`
}
