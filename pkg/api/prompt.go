package api

import "time"

// Owner владелец промпта. Наружу отдается только username.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Prompt представление промпта в HTTP API
type Prompt struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Owner     Owner     `json:"owner"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsPublic  bool      `json:"isPublic"`
}

// CreatePromptRequest тело POST /api/prompts
type CreatePromptRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	IsPublic bool     `json:"isPublic,omitempty"`
}

// UpdatePromptRequest тело PUT /api/prompts/{id}.
// Отсутствующее поле (nil) сохраняет текущее значение.
type UpdatePromptRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	IsPublic *bool     `json:"isPublic,omitempty"`
}
