package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/promptpal/internal/models"
)

// Длины считаются в символах (рунах), не в байтах
const (
	// MaxTitleLen максимальная длина заголовка промпта
	MaxTitleLen = 200
	// MaxContentLen максимальная длина текста промпта
	MaxContentLen = 20000
	// MaxTags максимальное количество тегов у промпта
	MaxTags = 20
	// MaxTagLen максимальная длина одного тега
	MaxTagLen = 50
)

// ValidatePrompt проверяет поля промпта перед сохранением.
// Ожидает уже нормализованные значения (trim, NormalizeTags).
func ValidatePrompt(p *models.Prompt) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(p.Content) > MaxContentLen {
		return fmt.Errorf("content must not exceed %d characters", MaxContentLen)
	}

	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	if !models.IsValidCategory(p.Category) {
		return fmt.Errorf("category must be one of: %s", strings.Join(models.Categories(), ", "))
	}

	if len(p.Tags) > MaxTags {
		return fmt.Errorf("a prompt can have at most %d tags", MaxTags)
	}
	for _, tag := range p.Tags {
		if utf8.RuneCountInString(tag) > MaxTagLen {
			return fmt.Errorf("tag %q must not exceed %d characters", tag, MaxTagLen)
		}
	}

	return nil
}
