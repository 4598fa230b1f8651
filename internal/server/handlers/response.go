package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/service"
	"github.com/iudanet/promptpal/pkg/api"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// WriteJSON отправляет JSON ответ
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// WriteError отправляет JSON ответ с ошибкой в формате {"error": "..."}
func WriteError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(logger, w, api.ErrorResponse{Error: message}, statusCode)
}

// StatusForKind отображает вид ошибки сервиса в HTTP статус
func StatusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError отправляет ошибку сервиса. Сервис уже залогировал внутренние ошибки.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	WriteError(logger, w, service.MessageOf(err), StatusForKind(service.KindOf(err)))
}

// decodeJSON читает тело запроса в dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeErrorMessage текст ошибки разбора тела для клиента
func decodeErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "request body too large"
	}
	return "invalid request body"
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIPrompt(p *models.Prompt) api.Prompt {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Prompt{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      tags,
		IsPublic:  p.IsPublic,
		Owner:     api.Owner{ID: p.OwnerID, Username: p.OwnerUsername},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAPIPrompts(prompts []*models.Prompt) []api.Prompt {
	result := make([]api.Prompt, 0, len(prompts))
	for _, p := range prompts {
		result = append(result, toAPIPrompt(p))
	}
	return result
}
