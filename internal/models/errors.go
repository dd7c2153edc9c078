package models

import "errors"

// Закрытый набор классифицируемых ошибок. Слой HTTP-обработчиков
// переводит каждую из них в свой статус-код; всё остальное считается
// внутренней ошибкой и наружу уходит как generic 500.
var (
	// ErrEmailTaken возвращается при нарушении уникальности email.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrUsernameTaken возвращается при нарушении уникальности username.
	ErrUsernameTaken = errors.New("username is already in use")
	// ErrInvalidCredentials возвращается при неверном identifier или пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound возвращается, когда задача не существует
	// или принадлежит другому пользователю. Оба случая неразличимы,
	// чтобы не раскрывать существование чужих задач.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError описывает нарушение формата входных данных.
// Message безопасно показывать клиенту и оно называет конкретное поле.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError создает ValidationError с заданным сообщением.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
