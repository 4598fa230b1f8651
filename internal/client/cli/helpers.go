package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/promptpal/internal/client/prompts"
	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/pkg/api"
)

// ask возвращает value, если оно задано флагом, иначе спрашивает пользователя
func (a *App) ask(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	input, err := a.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}

// confirm спрашивает y/N
func (a *App) confirm(prompt string) (bool, error) {
	answer, err := a.io.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// checkCategory пустая строка и "all" допустимы как фильтр
func checkCategory(category string, allowAll bool) error {
	if category == "" || models.IsValidCategory(category) {
		return nil
	}
	if allowAll && strings.EqualFold(category, prompts.CategoryAll) {
		return nil
	}
	return fmt.Errorf("unknown category %q, use one of: %s", category, strings.Join(models.Categories(), ", "))
}

func visibility(p api.Prompt) string {
	if p.IsPublic {
		return "public"
	}
	return "private"
}

// truncate обрезает по рунам и заменяет переводы строк пробелами
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// printList краткий список промптов
func (a *App) printList(list []api.Prompt, showOwner bool) {
	for i, p := range list {
		a.io.Printf("%d. %s [%s, %s]\n", i+1, p.Title, p.Category, visibility(p))
		a.io.Printf("   ID:   %s\n", p.ID)
		if showOwner {
			a.io.Printf("   By:   %s\n", p.Owner.Username)
		}
		if len(p.Tags) > 0 {
			a.io.Printf("   Tags: %s\n", strings.Join(p.Tags, ", "))
		}
		a.io.Printf("   %s\n", truncate(p.Content, 80))
		a.io.Println()
	}
}
