package storage

import (
	"context"

	"github.com/iudanet/promptpal/internal/models"
)

// PromptStorage defines interface for prompt persistence.
// All list methods order by created_at DESC, id DESC.
// Returned prompts have OwnerUsername resolved.
type PromptStorage interface {
	// CreatePrompt inserts a new prompt
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error

	// GetPrompt retrieves a prompt by ID only if it is owned by ownerID
	// Returns ErrPromptNotFound otherwise
	GetPrompt(ctx context.Context, id, ownerID string) (*models.Prompt, error)

	// ListPublicPrompts returns at most limit public prompts
	ListPublicPrompts(ctx context.Context, limit int) ([]*models.Prompt, error)

	// ListUserPrompts returns all prompts owned by ownerID
	// Returns empty slice if no prompts found
	ListUserPrompts(ctx context.Context, ownerID string) ([]*models.Prompt, error)

	// UpdatePrompt replaces mutable fields (title, content, category, tags,
	// is_public, updated_at) of a prompt owned by prompt.OwnerID
	// Returns ErrPromptNotFound if no such prompt is owned by prompt.OwnerID
	UpdatePrompt(ctx context.Context, prompt *models.Prompt) error

	// DeletePrompt permanently removes a prompt owned by ownerID
	// Returns ErrPromptNotFound if no such prompt is owned by ownerID
	DeletePrompt(ctx context.Context, id, ownerID string) error
}

// Pinger reports whether the underlying database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
