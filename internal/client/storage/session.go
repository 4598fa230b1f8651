package storage

import (
	"context"
	"time"

	"github.com/iudanet/promptpal/pkg/api"
)

// SessionStorage хранит сессию клиента между запусками CLI.
// Хранилище работает с данными как есть и не проверяет токен.
type SessionStorage interface {
	// SaveSession заменяет сохраненную сессию
	SaveSession(ctx context.Context, session *SessionData) error

	// LoadSession возвращает ErrSessionNotFound, если сессии нет
	LoadSession(ctx context.Context) (*SessionData, error)

	// ClearSession удаляет сессию. Отсутствие сессии не ошибка.
	ClearSession(ctx context.Context) error
}

// SessionData токен и закешированный пользователь.
// Кеш позволяет показать имя пользователя до ответа /me.
type SessionData struct {
	SavedAt time.Time `json:"saved_at"`
	User    api.User  `json:"user"`
	Token   string    `json:"token"`
}
