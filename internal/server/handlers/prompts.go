package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/service"
	"github.com/iudanet/promptpal/pkg/api"
)

// PromptService операции над промптами, нужные handler'у
type PromptService interface {
	ListPublic(ctx context.Context, limit int) ([]*models.Prompt, error)
	ListMine(ctx context.Context, userID string) ([]*models.Prompt, error)
	GetMine(ctx context.Context, userID, id string) (*models.Prompt, error)
	Create(ctx context.Context, userID string, in service.PromptInput) (*models.Prompt, error)
	Update(ctx context.Context, userID, id string, patch service.PromptPatch) (*models.Prompt, error)
	ToggleVisibility(ctx context.Context, userID, id string) (*models.Prompt, error)
	Delete(ctx context.Context, userID, id string) error
}

// PromptHandler обрабатывает запросы к промптам
type PromptHandler struct {
	logger  *slog.Logger
	prompts PromptService
}

// NewPromptHandler создает новый handler для промптов
func NewPromptHandler(logger *slog.Logger, prompts PromptService) *PromptHandler {
	return &PromptHandler{
		logger:  logger,
		prompts: prompts,
	}
}

// ListPublic обрабатывает GET /api/prompts/public?limit=N
func (h *PromptHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(h.logger, w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	prompts, err := h.prompts.ListPublic(r.Context(), limit)
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompts(prompts), http.StatusOK)
}

// ListMine обрабатывает GET /api/prompts
func (h *PromptHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	prompts, err := h.prompts.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompts(prompts), http.StatusOK)
}

// Get обрабатывает GET /api/prompts/{id}
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	prompt, err := h.prompts.GetMine(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompt(prompt), http.StatusOK)
}

// Create обрабатывает POST /api/prompts
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.CreatePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode create prompt request", slog.Any("error", err))
		WriteError(h.logger, w, decodeErrorMessage(err), http.StatusBadRequest)
		return
	}

	prompt, err := h.prompts.Create(r.Context(), userID, service.PromptInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompt(prompt), http.StatusCreated)
}

// Update обрабатывает PUT /api/prompts/{id}
// Частичное обновление: отсутствующие поля не меняются
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	// Пустое тело означает пустой патч
	var req api.UpdatePromptRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "failed to decode update prompt request", slog.Any("error", err))
		WriteError(h.logger, w, decodeErrorMessage(err), http.StatusBadRequest)
		return
	}

	prompt, err := h.prompts.Update(r.Context(), userID, r.PathValue("id"), service.PromptPatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompt(prompt), http.StatusOK)
}

// Toggle обрабатывает POST /api/prompts/{id}/toggle
func (h *PromptHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	prompt, err := h.prompts.ToggleVisibility(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	WriteJSON(h.logger, w, toAPIPrompt(prompt), http.StatusOK)
}

// Delete обрабатывает DELETE /api/prompts/{id}
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.prompts.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PromptHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user_id not found in context")
		WriteError(h.logger, w, "unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}
