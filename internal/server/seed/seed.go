// Package seed наполняет базу демонстрационными промптами.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"regexp"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/service"
)

// Options параметры наполнения
type Options struct {
	Username string
	Email    string
	Password string
	Count    int
	// PublicRatio доля публичных промптов в диапазоне [0, 1]
	PublicRatio float64
	// Seed делает результат воспроизводимым
	Seed uint64
}

// DefaultOptions демо-пользователь и 120 промптов, ~70% публичных
func DefaultOptions() Options {
	return Options{
		Username:    "seed_user",
		Email:       "seed@example.com",
		Password:    "password123",
		Count:       120,
		PublicRatio: 0.7,
		Seed:        1,
	}
}

// Auth регистрация и вход демо-пользователя
type Auth interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// Prompts создание промптов
type Prompts interface {
	Create(ctx context.Context, userID string, in service.PromptInput) (*models.Prompt, error)
}

// Result итог наполнения
type Result struct {
	UserID      string
	Created     int
	Public      int
	UserCreated bool
}

type template struct {
	title    string
	content  string
	category string
	tags     []string
}

var templates = []template{
	{
		title:    "Blog Post Outline",
		content:  "Create a detailed outline for a blog post about {topic}. Include an introduction, 3-5 main sections with subpoints, and a conclusion.",
		category: models.CategoryWriting,
		tags:     []string{"blog", "content", "outline"},
	},
	{
		title:    "Code Review Checklist",
		content:  "As a senior developer, review this {language} code and provide feedback on: 1) Code organization, 2) Performance optimizations, 3) Security concerns, 4) Best practices, 5) Readability.",
		category: models.CategoryProgramming,
		tags:     []string{"code review", "best practices", "development"},
	},
	{
		title:    "Marketing Email Sequence",
		content:  "Create a 5-email sequence for a {product} launch. Each email should have a compelling subject line, engaging hook, value proposition, social proof, and clear call-to-action.",
		category: models.CategoryMarketing,
		tags:     []string{"email", "campaign", "launch"},
	},
	{
		title:    "Lesson Plan Template",
		content:  "Create a detailed lesson plan for teaching {subject} to {grade level} students. Include learning objectives, materials needed, warm-up activity, main instruction, practice activities, assessment method, and homework.",
		category: models.CategoryEducation,
		tags:     []string{"teaching", "curriculum", "education"},
	},
	{
		title:    "Business Proposal Framework",
		content:  "Create a business proposal for a {business type} that addresses: 1) Problem statement, 2) Proposed solution, 3) Market analysis, 4) Revenue model, 5) Competition, 6) Implementation timeline, 7) Financial projections.",
		category: models.CategoryBusiness,
		tags:     []string{"proposal", "business plan", "strategy"},
	},
	{
		title:    "Creative Story Starter",
		content:  "Write the opening paragraph for a {genre} story that takes place in a {setting}. The paragraph should establish tone, introduce the protagonist, and hint at a central conflict.",
		category: models.CategoryCreative,
		tags:     []string{"writing", "fiction", "story"},
	},
	{
		title:    "Data Analysis Report",
		content:  "Create a comprehensive analysis report for {dataset type} data that includes: 1) Executive summary, 2) Methodology, 3) Key findings with visualizations, 4) Limitations of analysis, 5) Actionable recommendations.",
		category: models.CategoryAnalysis,
		tags:     []string{"data", "analytics", "reporting"},
	},
	{
		title:    "Productivity System",
		content:  "Design a productivity system for a {profession} that includes: 1) Daily routines, 2) Task prioritization method, 3) Tools and apps, 4) Meeting structure, 5) Focus techniques, 6) Progress tracking.",
		category: models.CategoryOther,
		tags:     []string{"productivity", "workflow", "organization"},
	},
	{
		title:    "Interview Question Bank",
		content:  "Generate 20 interview questions for a {position} role, covering technical skills, experience, behavioral scenarios, problem-solving abilities, and cultural fit.",
		category: models.CategoryBusiness,
		tags:     []string{"interview", "hiring", "HR"},
	},
	{
		title:    "Weekly Meal Plan",
		content:  "Create a 7-day meal plan for someone following a {diet type} diet. Include breakfast, lunch, dinner, and snacks with ingredients list and simple preparation instructions.",
		category: models.CategoryOther,
		tags:     []string{"meal planning", "nutrition", "cooking"},
	},
}

var substitutions = map[string][]string{
	"topic":         {"artificial intelligence", "sustainable living", "personal finance", "mental health", "career development"},
	"language":      {"Go", "Python", "TypeScript", "Rust", "Java"},
	"product":       {"SaaS platform", "mobile app", "online course", "subscription service"},
	"subject":       {"mathematics", "science", "history", "literature", "programming"},
	"grade level":   {"elementary", "middle school", "high school", "college", "adult"},
	"business type": {"tech startup", "local restaurant", "e-commerce store", "non-profit organization"},
	"genre":         {"science fiction", "mystery", "fantasy", "thriller"},
	"setting":       {"space colony", "medieval kingdom", "modern city", "enchanted forest"},
	"dataset type":  {"customer behavior", "financial performance", "social media engagement"},
	"profession":    {"software developer", "teacher", "freelancer", "small business owner"},
	"position":      {"software engineer", "product manager", "data analyst", "project manager"},
	"diet type":     {"vegetarian", "keto", "Mediterranean", "gluten-free"},
}

var placeholderRe = regexp.MustCompile(`\{([^}]+)\}`)

// fill подставляет случайные значения вместо {placeholder}. Неизвестные остаются как есть.
func fill(rng *rand.Rand, text string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		values, ok := substitutions[match[1:len(match)-1]]
		if !ok {
			return match
		}
		return values[rng.IntN(len(values))]
	})
}

// Run создает демо-пользователя (или входит им, если он уже есть) и count промптов от его имени
func Run(ctx context.Context, logger *slog.Logger, auth Auth, prompts Prompts, opts Options) (*Result, error) {
	result := &Result{}

	session, err := auth.Register(ctx, opts.Username, opts.Email, opts.Password)
	switch {
	case err == nil:
		result.UserCreated = true
		logger.InfoContext(ctx, "Seed user created", slog.String("username", opts.Username))
	case service.KindOf(err) == service.KindConflict:
		session, err = auth.Login(ctx, opts.Email, opts.Password)
		if err != nil {
			return nil, fmt.Errorf("seed user exists but login failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to register seed user: %w", err)
	}
	result.UserID = session.User.ID

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	for i := 0; i < opts.Count; i++ {
		tmpl := templates[rng.IntN(len(templates))]
		in := service.PromptInput{
			Title:    fill(rng, tmpl.title),
			Content:  fill(rng, tmpl.content),
			Category: tmpl.category,
			Tags:     tmpl.tags,
			IsPublic: rng.Float64() < opts.PublicRatio,
		}

		if _, err := prompts.Create(ctx, result.UserID, in); err != nil {
			return result, fmt.Errorf("failed to create prompt %d: %w", i+1, err)
		}
		result.Created++
		if in.IsPublic {
			result.Public++
		}
	}

	logger.InfoContext(ctx, "Seeding complete",
		slog.Int("created", result.Created),
		slog.Int("public", result.Public))

	return result, nil
}
