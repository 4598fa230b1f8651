package models

import "time"

// User представляет пользователя в системе.
// Наружу отдается только через pkg/api.User, без хеша пароля.
type User struct {
	CreatedAt    time.Time // время регистрации
	ID           string    // UUID пользователя
	Username     string    // уникальный username
	Email        string    // уникальный email (lower-case)
	PasswordHash string    // bcrypt хеш пароля
}
