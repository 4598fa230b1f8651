package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/storage"
	"github.com/iudanet/promptpal/internal/validation"
)

const (
	// DefaultPublicLimit размер страницы публичных промптов по умолчанию
	DefaultPublicLimit = 100
	// MaxPublicLimit верхняя граница размера страницы
	MaxPublicLimit = 100
)

// PromptInput поля нового промпта
type PromptInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	IsPublic bool
}

// PromptPatch частичное обновление: nil поле сохраняет текущее значение
type PromptPatch struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
	IsPublic *bool
}

// PromptService реализует CRUD промптов с учетом владельца
type PromptService struct {
	logger      *slog.Logger
	prompts     storage.PromptStorage
	now         func() time.Time
	publicLimit int
}

// NewPromptService создает новый PromptService.
// publicLimit <= 0 означает DefaultPublicLimit.
func NewPromptService(logger *slog.Logger, prompts storage.PromptStorage, publicLimit int) *PromptService {
	return &PromptService{
		logger:      logger,
		prompts:     prompts,
		now:         time.Now,
		publicLimit: clampLimit(publicLimit, DefaultPublicLimit),
	}
}

func clampLimit(limit, def int) int {
	switch {
	case limit <= 0:
		return def
	case limit > MaxPublicLimit:
		return MaxPublicLimit
	default:
		return limit
	}
}

// ListPublic возвращает публичные промпты, новые первыми.
// limit <= 0 означает размер страницы сервиса.
func (s *PromptService) ListPublic(ctx context.Context, limit int) ([]*models.Prompt, error) {
	prompts, err := s.prompts.ListPublicPrompts(ctx, clampLimit(limit, s.publicLimit))
	if err != nil {
		return nil, s.internal(ctx, "failed to list public prompts", err)
	}
	return prompts, nil
}

// ListMine возвращает все промпты пользователя, новые первыми
func (s *PromptService) ListMine(ctx context.Context, userID string) ([]*models.Prompt, error) {
	prompts, err := s.prompts.ListUserPrompts(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "failed to list user prompts", err)
	}
	return prompts, nil
}

// GetMine возвращает промпт, только если он принадлежит userID
func (s *PromptService) GetMine(ctx context.Context, userID, id string) (*models.Prompt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound(msgPromptNotFound, err)
	}

	prompt, err := s.prompts.GetPrompt(ctx, id, userID)
	if err != nil {
		if errors.Is(err, storage.ErrPromptNotFound) {
			return nil, notFound(msgPromptNotFound, err)
		}
		return nil, s.internal(ctx, "failed to get prompt", err)
	}
	return prompt, nil
}

// Create сохраняет новый промпт от имени userID
func (s *PromptService) Create(ctx context.Context, userID string, in PromptInput) (*models.Prompt, error) {
	now := s.now().UTC()
	prompt := &models.Prompt{
		ID:        uuid.New().String(),
		OwnerID:   userID,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Category:  strings.TrimSpace(in.Category),
		Tags:      models.NormalizeTags(in.Tags),
		IsPublic:  in.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validation.ValidatePrompt(prompt); err != nil {
		return nil, validationError(err)
	}

	if err := s.prompts.CreatePrompt(ctx, prompt); err != nil {
		return nil, s.internal(ctx, "failed to create prompt", err)
	}

	s.logger.InfoContext(ctx, "Prompt created",
		slog.String("user_id", userID),
		slog.String("prompt_id", prompt.ID),
		slog.Bool("is_public", prompt.IsPublic))

	// Перечитываем, чтобы вернуть промпт с username владельца
	return s.reload(ctx, prompt)
}

// Update применяет частичное обновление к промпту userID.
// Конкурентные обновления: побеждает последняя запись.
func (s *PromptService) Update(ctx context.Context, userID, id string, patch PromptPatch) (*models.Prompt, error) {
	prompt, err := s.GetMine(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		prompt.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		prompt.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Category != nil {
		prompt.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Tags != nil {
		prompt.Tags = models.NormalizeTags(*patch.Tags)
	}
	if patch.IsPublic != nil {
		prompt.IsPublic = *patch.IsPublic
	}

	if err := validation.ValidatePrompt(prompt); err != nil {
		return nil, validationError(err)
	}

	return s.save(ctx, prompt)
}

// ToggleVisibility инвертирует IsPublic промпта userID
func (s *PromptService) ToggleVisibility(ctx context.Context, userID, id string) (*models.Prompt, error) {
	prompt, err := s.GetMine(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prompt.IsPublic = !prompt.IsPublic
	return s.save(ctx, prompt)
}

// Delete безвозвратно удаляет промпт userID
func (s *PromptService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(msgPromptNotFound, err)
	}

	if err := s.prompts.DeletePrompt(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrPromptNotFound) {
			return notFound(msgPromptNotFound, err)
		}
		return s.internal(ctx, "failed to delete prompt", err)
	}

	s.logger.InfoContext(ctx, "Prompt deleted",
		slog.String("user_id", userID),
		slog.String("prompt_id", id))

	return nil
}

func (s *PromptService) save(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	prompt.UpdatedAt = s.now().UTC()

	if err := s.prompts.UpdatePrompt(ctx, prompt); err != nil {
		// Промпт могли удалить между чтением и записью
		if errors.Is(err, storage.ErrPromptNotFound) {
			return nil, notFound(msgPromptNotFound, err)
		}
		return nil, s.internal(ctx, "failed to update prompt", err)
	}

	s.logger.InfoContext(ctx, "Prompt updated",
		slog.String("user_id", prompt.OwnerID),
		slog.String("prompt_id", prompt.ID),
		slog.Bool("is_public", prompt.IsPublic))

	return s.reload(ctx, prompt)
}

func (s *PromptService) reload(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	stored, err := s.prompts.GetPrompt(ctx, prompt.ID, prompt.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrPromptNotFound) {
			return nil, notFound(msgPromptNotFound, err)
		}
		return nil, s.internal(ctx, "failed to reload prompt", err)
	}
	return stored, nil
}

func (s *PromptService) internal(ctx context.Context, msg string, err error) *Error {
	s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	return internal(fmt.Errorf("%s: %w", msg, err))
}
