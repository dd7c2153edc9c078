// Package models содержит доменную модель пользователя системы.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Уникальность username и email обеспечивается хранилищем без учета
// регистра, отображаемое написание сохраняется как при регистрации.
type User struct {
	UID          string    `json:"id"`        // Уникальный идентификатор пользователя
	Username     string    `json:"username"`  // Имя пользователя
	Email        string    `json:"email"`     // Электронная почта (хранится в нижнем регистре)
	PasswordHash string    `json:"-"`         // Хэш пароля, наружу не отдается
	CreatedAt    time.Time `json:"createdAt"` // Момент регистрации
	UpdatedAt    time.Time `json:"updatedAt"` // Момент последнего изменения
}
