package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/storage"
)

const promptSelect = `
	SELECT p.id, p.owner_id, u.username, p.title, p.content, p.category,
	       p.tags, p.is_public, p.created_at, p.updated_at
	FROM prompts p
	JOIN users u ON u.id = p.owner_id
`

// CreatePrompt inserts a new prompt
func (s *Storage) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	tags, err := encodeTags(prompt.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO prompts (
			id, owner_id, title, content, category,
			tags, is_public, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		prompt.ID,
		prompt.OwnerID,
		prompt.Title,
		prompt.Content,
		prompt.Category,
		tags,
		boolToInt(prompt.IsPublic),
		toUnixNano(prompt.CreatedAt),
		toUnixNano(prompt.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prompt: %w", err)
	}

	return nil
}

// GetPrompt retrieves a prompt owned by ownerID
func (s *Storage) GetPrompt(ctx context.Context, id, ownerID string) (*models.Prompt, error) {
	query := promptSelect + ` WHERE p.id = ? AND p.owner_id = ?`

	prompt, err := scanPrompt(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}

	return prompt, nil
}

// ListPublicPrompts returns at most limit public prompts, newest first
func (s *Storage) ListPublicPrompts(ctx context.Context, limit int) ([]*models.Prompt, error) {
	query := promptSelect + `
		WHERE p.is_public = 1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`
	return s.queryPrompts(ctx, query, limit)
}

// ListUserPrompts returns all prompts owned by ownerID, newest first
func (s *Storage) ListUserPrompts(ctx context.Context, ownerID string) ([]*models.Prompt, error) {
	query := promptSelect + `
		WHERE p.owner_id = ?
		ORDER BY p.created_at DESC, p.id DESC
	`
	return s.queryPrompts(ctx, query, ownerID)
}

// UpdatePrompt replaces mutable fields of a prompt owned by prompt.OwnerID
func (s *Storage) UpdatePrompt(ctx context.Context, prompt *models.Prompt) error {
	tags, err := encodeTags(prompt.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE prompts
		SET title = ?, content = ?, category = ?, tags = ?,
		    is_public = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		prompt.Title,
		prompt.Content,
		prompt.Category,
		tags,
		boolToInt(prompt.IsPublic),
		toUnixNano(prompt.UpdatedAt),
		prompt.ID,
		prompt.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPromptNotFound
	}

	return nil
}

// DeletePrompt permanently removes a prompt owned by ownerID
func (s *Storage) DeletePrompt(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM prompts WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPromptNotFound
	}

	return nil
}

func (s *Storage) queryPrompts(ctx context.Context, query string, args ...any) ([]*models.Prompt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	prompts := make([]*models.Prompt, 0)

	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return prompts, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (*models.Prompt, error) {
	prompt := &models.Prompt{}
	var (
		tags                 string
		isPublic             int
		createdAt, updatedAt int64
	)

	err := row.Scan(
		&prompt.ID,
		&prompt.OwnerID,
		&prompt.OwnerUsername,
		&prompt.Title,
		&prompt.Content,
		&prompt.Category,
		&tags,
		&isPublic,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &prompt.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	prompt.IsPublic = isPublic != 0
	prompt.CreatedAt = fromUnixNano(createdAt)
	prompt.UpdatedAt = fromUnixNano(updatedAt)

	return prompt, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
