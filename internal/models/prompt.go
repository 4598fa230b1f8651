package models

import (
	"strings"
	"time"
)

// Категории промптов. Набор фиксированный, сервер отклоняет все остальные значения.
const (
	CategoryWriting     = "writing"
	CategoryProgramming = "programming"
	CategoryMarketing   = "marketing"
	CategoryEducation   = "education"
	CategoryBusiness    = "business"
	CategoryCreative    = "creative"
	CategoryAnalysis    = "analysis"
	CategoryOther       = "other"
)

// Categories возвращает все допустимые категории в порядке отображения
func Categories() []string {
	return []string{
		CategoryWriting,
		CategoryProgramming,
		CategoryMarketing,
		CategoryEducation,
		CategoryBusiness,
		CategoryCreative,
		CategoryAnalysis,
		CategoryOther,
	}
}

// IsValidCategory проверяет, входит ли категория в фиксированный набор
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Prompt представляет сохраненный текстовый промпт пользователя.
// OwnerUsername заполняется хранилищем при чтении (join с users).
// Наружу отдается только через pkg/api.Prompt.
type Prompt struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	Title         string
	Content       string
	Category      string
	OwnerID       string
	OwnerUsername string
	Tags          []string
	IsPublic      bool
}

// NormalizeTags trims tags, drops empty ones and removes case-insensitive
// duplicates keeping the first occurrence. Result is never nil.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tag)
	}
	return result
}
