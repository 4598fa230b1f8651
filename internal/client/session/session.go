// Package session хранит сессию пользователя CLI: токен и закешированного
// пользователя. Store создается один раз при старте и передается явно.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	apiclient "github.com/iudanet/promptpal/internal/client/api"
	"github.com/iudanet/promptpal/internal/client/storage"
	"github.com/iudanet/promptpal/internal/validation"
	"github.com/iudanet/promptpal/pkg/api"
)

// ErrNotLoggedIn операция требует сессии, а ее нет
var ErrNotLoggedIn = errors.New("not logged in")

// LoginRequiredError возвращается Require без сессии.
// Destination: команда, которую нужно повторить после входа.
type LoginRequiredError struct {
	Destination string
}

func (e *LoginRequiredError) Error() string {
	if e.Destination == "" {
		return "login required"
	}
	return fmt.Sprintf("login required to %s", e.Destination)
}

// API серверные операции, нужные сессии
type API interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.User, error)
}

// Listener вызывается после смены токена. Пустой токен: выход.
type Listener func(ctx context.Context, token string)

// Store сессия клиента
type Store struct {
	api       API
	storage   storage.SessionStorage
	logger    *slog.Logger
	now       func() time.Time
	user      *api.User
	listeners map[int]Listener
	token     string
	nextID    int
	mu        sync.RWMutex
}

// New создает Store и восстанавливает сохраненную сессию.
// Поврежденная сессия не мешает запуску: клиент стартует без входа.
func New(ctx context.Context, logger *slog.Logger, client API, sessions storage.SessionStorage) *Store {
	s := &Store{
		api:       client,
		storage:   sessions,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}

	saved, err := sessions.LoadSession(ctx)
	switch {
	case err == nil:
		s.token = saved.Token
		user := saved.User
		s.user = &user
	case errors.Is(err, storage.ErrSessionNotFound):
	default:
		logger.Warn("failed to restore session", slog.String("error", err.Error()))
	}

	return s
}

// Token текущий токен или пустая строка. Store реализует api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User закешированный пользователь или nil
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn есть ли токен
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Require возвращает *LoginRequiredError, если сессии нет
func (s *Store) Require(destination string) error {
	if s.LoggedIn() {
		return nil
	}
	return &LoginRequiredError{Destination: destination}
}

// Subscribe добавляет слушателя смены токена. Возвращает функцию отписки.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Register регистрирует пользователя и сразу входит
func (s *Store) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	username = strings.TrimSpace(username)
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login входит по email и паролю
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout удаляет сессию. Состояние в памяти очищается даже при ошибке хранилища.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.ClearSession(ctx)
	if err != nil {
		err = fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	changed := s.token != ""
	s.token = ""
	s.user = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if changed {
		notify(ctx, listeners, "")
	}
	return err
}

// Refresh перепроверяет токен через /me и обновляет кеш пользователя.
// Если сервер отверг токен, сессия удаляется.
func (s *Store) Refresh(ctx context.Context) (*api.User, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			s.logger.Info("session expired, logging out")
			if logoutErr := s.Logout(ctx); logoutErr != nil {
				s.logger.Warn("failed to clear expired session", slog.String("error", logoutErr.Error()))
			}
		}
		return nil, err
	}

	s.mu.Lock()
	if s.token != token {
		// Пока шел запрос, сессия сменилась
		s.mu.Unlock()
		return user, nil
	}
	s.user = user
	s.mu.Unlock()

	if err := s.storage.SaveSession(ctx, &storage.SessionData{
		Token:   token,
		User:    *user,
		SavedAt: s.now(),
	}); err != nil {
		s.logger.Warn("failed to persist refreshed user", slog.String("error", err.Error()))
	}

	return user, nil
}

// set сохраняет новую сессию и уведомляет слушателей.
// При ошибке сохранения состояние не меняется.
func (s *Store) set(ctx context.Context, token string, user api.User) error {
	if err := s.storage.SaveSession(ctx, &storage.SessionData{
		Token:   token,
		User:    user,
		SavedAt: s.now(),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	changed := s.token != token
	s.token = token
	s.user = &user
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if changed {
		notify(ctx, listeners, token)
	}
	return nil
}

// snapshotListeners вызывается под s.mu
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(ctx context.Context, listeners []Listener, token string) {
	for _, fn := range listeners {
		fn(ctx, token)
	}
}
