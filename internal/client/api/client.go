package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/promptpal/pkg/api"
)

// TokenSource отдает текущий bearer токен. Пустая строка: запрос без авторизации.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc адаптер функции к TokenSource
type TokenSourceFunc func() string

// Token returns f().
func (f TokenSourceFunc) Token() string { return f() }

// Option настраивает Client
type Option func(*Client)

// WithTokenSource задает источник токена для защищенных запросов
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient подменяет http.Client (таймауты, транспорт)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:       30 * time.Second,
			CheckRedirect: checkRedirect,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkRedirect переносит Authorization только на тот же host:port,
// токен не уходит на сторонний сервер
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return fmt.Errorf("stopped after 10 redirects")
	}
	if len(via) == 0 {
		return nil
	}
	if req.URL.Host != via[0].URL.Host {
		req.Header.Del("Authorization")
		return nil
	}
	if auth := via[0].Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return nil
}

// BaseURL адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает пользователя текущего токена
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var resp api.MeResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp.User, nil
}

// ListPublic публичные промпты всех пользователей, новые первыми.
// limit <= 0 оставляет размер страницы на усмотрение сервера.
func (c *Client) ListPublic(ctx context.Context, limit int) ([]api.Prompt, error) {
	path := "/api/prompts/public"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var resp []api.Prompt
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list public prompts failed: %w", err)
	}
	return resp, nil
}

// ListMine промпты текущего пользователя
func (c *Client) ListMine(ctx context.Context) ([]api.Prompt, error) {
	var resp []api.Prompt
	if err := c.doRequest(ctx, http.MethodGet, "/api/prompts", nil, &resp); err != nil {
		return nil, fmt.Errorf("list prompts failed: %w", err)
	}
	return resp, nil
}

// GetPrompt промпт текущего пользователя по id
func (c *Client) GetPrompt(ctx context.Context, id string) (*api.Prompt, error) {
	var resp api.Prompt
	if err := c.doRequest(ctx, http.MethodGet, promptPath(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get prompt failed: %w", err)
	}
	return &resp, nil
}

// CreatePrompt создает промпт
func (c *Client) CreatePrompt(ctx context.Context, req api.CreatePromptRequest) (*api.Prompt, error) {
	var resp api.Prompt
	if err := c.doRequest(ctx, http.MethodPost, "/api/prompts", req, &resp); err != nil {
		return nil, fmt.Errorf("create prompt failed: %w", err)
	}
	return &resp, nil
}

// UpdatePrompt частично обновляет промпт
func (c *Client) UpdatePrompt(ctx context.Context, id string, req api.UpdatePromptRequest) (*api.Prompt, error) {
	var resp api.Prompt
	if err := c.doRequest(ctx, http.MethodPut, promptPath(id), req, &resp); err != nil {
		return nil, fmt.Errorf("update prompt failed: %w", err)
	}
	return &resp, nil
}

// TogglePrompt инвертирует видимость промпта
func (c *Client) TogglePrompt(ctx context.Context, id string) (*api.Prompt, error) {
	var resp api.Prompt
	if err := c.doRequest(ctx, http.MethodPost, promptPath(id)+"/toggle", nil, &resp); err != nil {
		return nil, fmt.Errorf("toggle prompt failed: %w", err)
	}
	return &resp, nil
}

// DeletePrompt удаляет промпт
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, promptPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete prompt failed: %w", err)
	}
	return nil
}

// Health состояние сервера. 503 возвращается как *Error.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func promptPath(id string) string {
	return "/api/prompts/" + url.PathEscape(id)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
