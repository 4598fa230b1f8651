package api

// SuggestRequest тело запроса к сервису подсказок
type SuggestRequest struct {
	PromptText string   `json:"promptText"`
	Tags       []string `json:"tags"`
}

// SuggestResponse ответ сервиса подсказок: либо Suggestions, либо Error
type SuggestResponse struct {
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions"`
}
