// Package prompts держит на клиенте две коллекции промптов: публичные и свои,
// и поддерживает их согласованными с ответами сервера.
package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/iudanet/promptpal/pkg/api"
)

// CategoryAll в фильтре совпадает с любой категорией
const CategoryAll = "all"

// API серверные операции с промптами
type API interface {
	ListPublic(ctx context.Context, limit int) ([]api.Prompt, error)
	ListMine(ctx context.Context) ([]api.Prompt, error)
	CreatePrompt(ctx context.Context, req api.CreatePromptRequest) (*api.Prompt, error)
	UpdatePrompt(ctx context.Context, id string, req api.UpdatePromptRequest) (*api.Prompt, error)
	TogglePrompt(ctx context.Context, id string) (*api.Prompt, error)
	DeletePrompt(ctx context.Context, id string) error
}

// Stats счетчики своих промптов
type Stats struct {
	Total   int
	Public  int
	Private int
}

// Store кеш промптов на клиенте.
// Сетевые вызовы выполняются вне блокировки, результат применяется атомарно.
type Store struct {
	api         API
	logger      *slog.Logger
	public      []api.Prompt
	mine        []api.Prompt
	token       string
	generation  uint64
	publicLimit int
	mu          sync.RWMutex
}

// New создает пустой Store. publicLimit <= 0: размер страницы решает сервер.
func New(logger *slog.Logger, client API, publicLimit int) *Store {
	return &Store{
		api:         client,
		logger:      logger,
		publicLimit: publicLimit,
		public:      []api.Prompt{},
		mine:        []api.Prompt{},
	}
}

// OnTokenChange полностью перечитывает обе коллекции для нового токена.
// Свои промпты прежнего пользователя сбрасываются сразу, до ответа сервера.
// Подходит как session.Listener.
func (s *Store) OnTokenChange(ctx context.Context, token string) {
	if err := s.Reload(ctx, token); err != nil {
		s.logger.Warn("failed to reload prompts after session change", slog.String("error", err.Error()))
	}
}

// Reload перечитывает публичные и (при наличии токена) свои промпты
func (s *Store) Reload(ctx context.Context, token string) error {
	s.mu.Lock()
	if s.token != token {
		s.token = token
		s.mine = []api.Prompt{}
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	public, err := s.api.ListPublic(ctx, s.publicLimit)
	if err != nil {
		return fmt.Errorf("failed to load public prompts: %w", err)
	}

	mine := []api.Prompt{}
	if token != "" {
		mine, err = s.api.ListMine(ctx)
		if err != nil {
			return fmt.Errorf("failed to load your prompts: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Более поздний Reload уже применил свой результат
	if gen != s.generation {
		return nil
	}
	s.public = nonNil(public)
	s.mine = nonNil(mine)
	return nil
}

// Public копия публичных промптов, новые первыми
func (s *Store) Public() []api.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.public)
}

// Mine копия своих промптов, новые первыми
func (s *Store) Mine() []api.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mine)
}

// Find ищет промпт в своих, затем в публичных
func (s *Store) Find(id string) (api.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.mine, id); i >= 0 {
		return s.mine[i], true
	}
	if i := indexOf(s.public, id); i >= 0 {
		return s.public[i], true
	}
	return api.Prompt{}, false
}

// Create создает промпт и добавляет его в начало своих, а публичный и в начало публичных
func (s *Store) Create(ctx context.Context, req api.CreatePromptRequest) (*api.Prompt, error) {
	created, err := s.api.CreatePrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Reload мог успеть получить промпт раньше
	s.mine = prepend(remove(s.mine, created.ID), *created)
	if created.IsPublic {
		s.public = prepend(remove(s.public, created.ID), *created)
	}
	return created, nil
}

// Update применяет частичное изменение
func (s *Store) Update(ctx context.Context, id string, req api.UpdatePromptRequest) (*api.Prompt, error) {
	updated, err := s.api.UpdatePrompt(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.applyChanged(*updated)
	return updated, nil
}

// Toggle инвертирует видимость
func (s *Store) Toggle(ctx context.Context, id string) (*api.Prompt, error) {
	updated, err := s.api.TogglePrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	s.applyChanged(*updated)
	return updated, nil
}

// Delete удаляет промпт из обеих коллекций
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeletePrompt(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mine = remove(s.mine, id)
	s.public = remove(s.public, id)
	return nil
}

// applyChanged заменяет промпт серверной версией на его месте.
// Ставший приватным удаляется из публичных, ставший публичным добавляется в начало.
func (s *Store) applyChanged(p api.Prompt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.mine, p.ID); i >= 0 {
		s.mine[i] = p
	}

	i := indexOf(s.public, p.ID)
	switch {
	case !p.IsPublic:
		s.public = remove(s.public, p.ID)
	case i >= 0:
		s.public[i] = p
	default:
		s.public = prepend(s.public, p)
	}
}

// FilterPublic публичные промпты, отобранные Filter
func (s *Store) FilterPublic(search, category string) []api.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.public, search, category)
}

// Filter промпты, у которых search (без учета регистра) входит в заголовок,
// текст или один из тегов, а категория совпадает без учета регистра.
// Пустая категория или "all" совпадает с любой. Результат не nil.
func Filter(list []api.Prompt, search, category string) []api.Prompt {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	out := []api.Prompt{}
	for _, p := range list {
		if category != "" && !strings.EqualFold(category, CategoryAll) && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats счетчики своих промптов
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.mine)}
	for _, p := range s.mine {
		if p.IsPublic {
			st.Public++
		}
	}
	st.Private = st.Total - st.Public
	return st
}

func matches(p api.Prompt, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func indexOf(list []api.Prompt, id string) int {
	return slices.IndexFunc(list, func(p api.Prompt) bool { return p.ID == id })
}

func prepend(list []api.Prompt, p api.Prompt) []api.Prompt {
	return append([]api.Prompt{p}, list...)
}

func remove(list []api.Prompt, id string) []api.Prompt {
	return slices.DeleteFunc(list, func(p api.Prompt) bool { return p.ID == id })
}

func nonNil(list []api.Prompt) []api.Prompt {
	if list == nil {
		return []api.Prompt{}
	}
	return list
}
