package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/internal/server/service"
	"github.com/iudanet/promptpal/pkg/api"
)

// mockPromptService is a mock implementation of PromptService for testing
type mockPromptService struct {
	prompt    *models.Prompt
	err       error
	list      []*models.Prompt
	gotInput  service.PromptInput
	gotPatch  service.PromptPatch
	gotUserID string
	gotID     string
	gotLimit  int
}

func (m *mockPromptService) ListPublic(ctx context.Context, limit int) ([]*models.Prompt, error) {
	m.gotLimit = limit
	return m.list, m.err
}

func (m *mockPromptService) ListMine(ctx context.Context, userID string) ([]*models.Prompt, error) {
	m.gotUserID = userID
	return m.list, m.err
}

func (m *mockPromptService) GetMine(ctx context.Context, userID, id string) (*models.Prompt, error) {
	m.gotUserID, m.gotID = userID, id
	return m.prompt, m.err
}

func (m *mockPromptService) Create(ctx context.Context, userID string, in service.PromptInput) (*models.Prompt, error) {
	m.gotUserID, m.gotInput = userID, in
	return m.prompt, m.err
}

func (m *mockPromptService) Update(ctx context.Context, userID, id string, patch service.PromptPatch) (*models.Prompt, error) {
	m.gotUserID, m.gotID, m.gotPatch = userID, id, patch
	return m.prompt, m.err
}

func (m *mockPromptService) ToggleVisibility(ctx context.Context, userID, id string) (*models.Prompt, error) {
	m.gotUserID, m.gotID = userID, id
	return m.prompt, m.err
}

func (m *mockPromptService) Delete(ctx context.Context, userID, id string) error {
	m.gotUserID, m.gotID = userID, id
	return m.err
}

func testPrompt() *models.Prompt {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	return &models.Prompt{
		ID:            "prompt-1",
		Title:         "T",
		Content:       "C",
		Category:      models.CategoryWriting,
		OwnerID:       "user-123",
		OwnerUsername: "alice",
		IsPublic:      true,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

// newPromptMux регистрирует маршруты так же, как сервер, чтобы работал r.PathValue
func newPromptMux(h *PromptHandler, userID string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prompts/public", h.ListPublic)
	mux.HandleFunc("GET /api/prompts", h.ListMine)
	mux.HandleFunc("POST /api/prompts", h.Create)
	mux.HandleFunc("GET /api/prompts/{id}", h.Get)
	mux.HandleFunc("PUT /api/prompts/{id}", h.Update)
	mux.HandleFunc("POST /api/prompts/{id}/toggle", h.Toggle)
	mux.HandleFunc("DELETE /api/prompts/{id}", h.Delete)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = withUser(r, userID)
		}
		mux.ServeHTTP(w, r)
	})
}

func TestPromptHandler_ListPublic(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", query: "", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=10", wantLimit: 10, wantStatus: http.StatusOK},
		{name: "zero limit", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "non numeric limit", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPromptService{list: []*models.Prompt{testPrompt()}}
			mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "")

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompts/public"+tt.query, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantLimit, mock.gotLimit)

			prompts := decodeBody[[]api.Prompt](t, w)
			require.Len(t, prompts, 1)
			assert.Equal(t, "alice", prompts[0].Owner.Username)
			assert.Equal(t, []string{}, prompts[0].Tags)
		})
	}
}

func TestPromptHandler_ListPublic_EmptyIsArray(t *testing.T) {
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), &mockPromptService{}), "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/prompts/public", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestPromptHandler_RequiresUser(t *testing.T) {
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), &mockPromptService{}), "")

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/prompts", nil),
		httptest.NewRequest(http.MethodGet, "/api/prompts/prompt-1", nil),
		httptest.NewRequest(http.MethodPost, "/api/prompts", strings.NewReader("{}")),
		httptest.NewRequest(http.MethodPut, "/api/prompts/prompt-1", strings.NewReader("{}")),
		httptest.NewRequest(http.MethodPost, "/api/prompts/prompt-1/toggle", nil),
		httptest.NewRequest(http.MethodDelete, "/api/prompts/prompt-1", nil),
	}

	for _, req := range requests {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assertErrorBody(t, w, http.StatusUnauthorized, "unauthorized")
		})
	}
}

func TestPromptHandler_Create(t *testing.T) {
	mock := &mockPromptService{prompt: testPrompt()}
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/api/prompts", api.CreatePromptRequest{
		Title:    "T",
		Content:  "C",
		Category: "writing",
		Tags:     []string{"a"},
		IsPublic: true,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-123", mock.gotUserID)
	assert.Equal(t, service.PromptInput{
		Title: "T", Content: "C", Category: "writing", Tags: []string{"a"}, IsPublic: true,
	}, mock.gotInput)

	resp := decodeBody[api.Prompt](t, w)
	assert.Equal(t, "prompt-1", resp.ID)
	assert.Equal(t, api.Owner{ID: "user-123", Username: "alice"}, resp.Owner)
	assert.True(t, resp.IsPublic)
}

func TestPromptHandler_Create_Errors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		mux := newPromptMux(NewPromptHandler(setupTestLogger(), &mockPromptService{}), "user-123")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/prompts", strings.NewReader("[")))
		assertErrorBody(t, w, http.StatusBadRequest, "invalid request body")
	})

	t.Run("validation", func(t *testing.T) {
		mock := &mockPromptService{err: &service.Error{Kind: service.KindValidation, Message: "title is required"}}
		mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/api/prompts", api.CreatePromptRequest{}))
		assertErrorBody(t, w, http.StatusBadRequest, "title is required")
	})
}

func TestPromptHandler_Update_PartialFields(t *testing.T) {
	mock := &mockPromptService{prompt: testPrompt()}
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")

	req := httptest.NewRequest(http.MethodPut, "/api/prompts/prompt-1", strings.NewReader(`{"isPublic":true}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "prompt-1", mock.gotID)
	require.NotNil(t, mock.gotPatch.IsPublic)
	assert.True(t, *mock.gotPatch.IsPublic)
	assert.Nil(t, mock.gotPatch.Title)
	assert.Nil(t, mock.gotPatch.Content)
	assert.Nil(t, mock.gotPatch.Category)
	assert.Nil(t, mock.gotPatch.Tags)
}

func TestPromptHandler_Update_EmptyBody(t *testing.T) {
	mock := &mockPromptService{prompt: testPrompt()}
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/prompts/prompt-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "prompt-1", mock.gotID)
	assert.Equal(t, service.PromptPatch{}, mock.gotPatch)

	// Битый JSON по-прежнему 400
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/prompts/prompt-1", strings.NewReader(`{"title":`)))
	assertErrorBody(t, w, http.StatusBadRequest, "invalid request body")
}

func TestPromptHandler_OwnershipErrors(t *testing.T) {
	notFound := &service.Error{Kind: service.KindNotFound, Message: "prompt not found"}

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/prompts/other", nil),
		httptest.NewRequest(http.MethodPut, "/api/prompts/other", strings.NewReader(`{"title":"x"}`)),
		httptest.NewRequest(http.MethodPut, "/api/prompts/other", nil),
		httptest.NewRequest(http.MethodPost, "/api/prompts/other/toggle", nil),
		httptest.NewRequest(http.MethodDelete, "/api/prompts/other", nil),
	}

	for _, req := range requests {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			mock := &mockPromptService{err: notFound}
			mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assertErrorBody(t, w, http.StatusNotFound, "prompt not found")
			assert.Equal(t, "other", mock.gotID)
		})
	}
}

func TestPromptHandler_ToggleAndDelete(t *testing.T) {
	mock := &mockPromptService{prompt: testPrompt()}
	mux := newPromptMux(NewPromptHandler(setupTestLogger(), mock), "user-123")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/prompts/prompt-1/toggle", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "prompt-1", mock.gotID)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/prompts/prompt-1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
