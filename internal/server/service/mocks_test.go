package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/storage"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // id -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return storage.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStorage) find(match func(*models.User) bool) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == userID })
}

// mockPromptStorage is a mock implementation of PromptStorage for testing
type mockPromptStorage struct {
	prompts     map[string]*models.Prompt // id -> Prompt
	usernames   map[string]string         // owner id -> username
	createError error
	getError    error
	listError   error
	updateError error
	deleteError error
	lastLimit   int
}

func newMockPromptStorage() *mockPromptStorage {
	return &mockPromptStorage{
		prompts:   make(map[string]*models.Prompt),
		usernames: make(map[string]string),
	}
}

func (m *mockPromptStorage) clone(p *models.Prompt) *models.Prompt {
	copied := *p
	copied.Tags = append([]string{}, p.Tags...)
	copied.OwnerUsername = m.usernames[p.OwnerID]
	return &copied
}

func (m *mockPromptStorage) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	if m.createError != nil {
		return m.createError
	}
	m.prompts[prompt.ID] = m.clone(prompt)
	return nil
}

func (m *mockPromptStorage) GetPrompt(ctx context.Context, id, ownerID string) (*models.Prompt, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	p, ok := m.prompts[id]
	if !ok || p.OwnerID != ownerID {
		return nil, storage.ErrPromptNotFound
	}
	return m.clone(p), nil
}

func (m *mockPromptStorage) sorted(match func(*models.Prompt) bool) []*models.Prompt {
	result := make([]*models.Prompt, 0)
	for _, p := range m.prompts {
		if match(p) {
			result = append(result, m.clone(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (m *mockPromptStorage) ListPublicPrompts(ctx context.Context, limit int) ([]*models.Prompt, error) {
	m.lastLimit = limit
	if m.listError != nil {
		return nil, m.listError
	}
	result := m.sorted(func(p *models.Prompt) bool { return p.IsPublic })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockPromptStorage) ListUserPrompts(ctx context.Context, ownerID string) ([]*models.Prompt, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.sorted(func(p *models.Prompt) bool { return p.OwnerID == ownerID }), nil
}

func (m *mockPromptStorage) UpdatePrompt(ctx context.Context, prompt *models.Prompt) error {
	if m.updateError != nil {
		return m.updateError
	}
	existing, ok := m.prompts[prompt.ID]
	if !ok || existing.OwnerID != prompt.OwnerID {
		return storage.ErrPromptNotFound
	}
	updated := m.clone(prompt)
	updated.CreatedAt = existing.CreatedAt
	m.prompts[prompt.ID] = updated
	return nil
}

func (m *mockPromptStorage) DeletePrompt(ctx context.Context, id, ownerID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	p, ok := m.prompts[id]
	if !ok || p.OwnerID != ownerID {
		return storage.ErrPromptNotFound
	}
	delete(m.prompts, id)
	return nil
}
