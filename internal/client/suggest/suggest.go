// Package suggest клиент внешнего сервиса подсказок для текста промпта.
// Один запрос, один таймаут, без повторов.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/iudanet/promptpal/pkg/api"
)

// DefaultTimeout таймаут запроса к сервису подсказок
const DefaultTimeout = 15 * time.Second

// ErrEmptyPrompt подсказки без текста промпта не запрашиваются
var ErrEmptyPrompt = errors.New("please enter some prompt content first")

// Client HTTP клиент сервиса подсказок
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает клиент с таймаутом timeout (<= 0: DefaultTimeout)
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Suggest отправляет текст и теги, возвращает варианты улучшенного промпта.
// Ответ {error} возвращается как ошибка с текстом сервиса.
func (c *Client) Suggest(ctx context.Context, promptText string, tags []string) ([]string, error) {
	if strings.TrimSpace(promptText) == "" {
		return nil, ErrEmptyPrompt
	}
	if tags == nil {
		tags = []string{}
	}

	body, err := json.Marshal(api.SuggestRequest{PromptText: promptText, Tags: tags})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var out api.SuggestResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("suggestion service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Error != "" {
		return nil, errors.New(out.Error)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("suggestion service returned status %d", resp.StatusCode)
	}

	return out.Suggestions, nil
}

var (
	numberingRe = regexp.MustCompile(`^\d+[.):]?\s*`)
	prefixRe    = regexp.MustCompile(`(?i)^(prompt|suggestion)[\s\d]*[:.-]\s*`)
)

// CleanSuggestion убирает нумерацию ("1.", "2)"), префиксы "Prompt:",
// "Suggestion 1 -" и обрамляющие кавычки
func CleanSuggestion(s string) string {
	s = strings.TrimSpace(s)
	s = numberingRe.ReplaceAllString(s, "")
	s = prefixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, q := range [][2]string{{`"`, `"`}, {`'`, `'`}, {"“", "”"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}
