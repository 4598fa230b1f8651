package prompts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/promptpal/pkg/api"
)

// mockAPI in-memory сервер: промпты одного владельца, новые первыми
type mockAPI struct {
	err       error
	prompts   []api.Prompt
	lastLimit int
	nextID    int
	mu        sync.Mutex
}

func (m *mockAPI) ListPublic(ctx context.Context, limit int) ([]api.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	var out []api.Prompt
	for _, p := range m.prompts {
		if p.IsPublic {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockAPI) ListMine(ctx context.Context) ([]api.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]api.Prompt(nil), m.prompts...), nil
}

func (m *mockAPI) CreatePrompt(ctx context.Context, req api.CreatePromptRequest) (*api.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	p := api.Prompt{
		ID:       fmt.Sprintf("p%d", m.nextID),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	}
	m.prompts = append([]api.Prompt{p}, m.prompts...)
	return &p, nil
}

func (m *mockAPI) find(id string) (int, error) {
	for i := range m.prompts {
		if m.prompts[i].ID == id {
			return i, nil
		}
	}
	return -1, errors.New("prompt not found")
}

func (m *mockAPI) UpdatePrompt(ctx context.Context, id string, req api.UpdatePromptRequest) (*api.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	p := &m.prompts[i]
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	out := *p
	return &out, nil
}

func (m *mockAPI) TogglePrompt(ctx context.Context, id string) (*api.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	m.prompts[i].IsPublic = !m.prompts[i].IsPublic
	out := m.prompts[i]
	return &out, nil
}

func (m *mockAPI) DeletePrompt(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	i, err := m.find(id)
	if err != nil {
		return err
	}
	m.prompts = append(m.prompts[:i], m.prompts[i+1:]...)
	return nil
}

func (m *mockAPI) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ids(list []api.Prompt) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func newLoadedStore(t *testing.T, m *mockAPI) *Store {
	t.Helper()
	s := New(setupTestLogger(), m, 50)
	require.NoError(t, s.Reload(context.Background(), "token"))
	return s
}

func TestStore_Reload(t *testing.T) {
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p2", IsPublic: true},
		{ID: "p1", IsPublic: false},
	}}
	s := New(setupTestLogger(), m, 50)

	assert.Empty(t, s.Public())
	assert.Empty(t, s.Mine())

	require.NoError(t, s.Reload(context.Background(), "token"))
	assert.Equal(t, []string{"p2"}, ids(s.Public()))
	assert.Equal(t, []string{"p2", "p1"}, ids(s.Mine()))
	assert.Equal(t, 50, m.lastLimit)

	// Без токена свои промпты пусты, публичные остаются
	require.NoError(t, s.Reload(context.Background(), ""))
	assert.Equal(t, []string{"p2"}, ids(s.Public()))
	assert.NotNil(t, s.Mine())
	assert.Empty(t, s.Mine())
}

func TestStore_ReloadFailure(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{{ID: "p1", IsPublic: true}}}
	s := newLoadedStore(t, m)

	m.setErr(errors.New("boom"))

	// Тот же токен: состояние не меняется
	require.Error(t, s.Reload(ctx, "token"))
	assert.Equal(t, []string{"p1"}, ids(s.Mine()))
	assert.Equal(t, []string{"p1"}, ids(s.Public()))

	// Другой токен: чужие промпты не показываем даже при ошибке
	require.Error(t, s.Reload(ctx, "other"))
	assert.Empty(t, s.Mine())
	assert.Equal(t, []string{"p1"}, ids(s.Public()))
}

func TestStore_OnTokenChange(t *testing.T) {
	m := &mockAPI{prompts: []api.Prompt{{ID: "p1"}}}
	s := New(setupTestLogger(), m, 0)

	s.OnTokenChange(context.Background(), "token")
	assert.Equal(t, []string{"p1"}, ids(s.Mine()))

	m.setErr(errors.New("boom"))
	s.OnTokenChange(context.Background(), "")
	assert.Empty(t, s.Mine())
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{}
	s := newLoadedStore(t, m)

	private, err := s.Create(ctx, api.CreatePromptRequest{Title: "private"})
	require.NoError(t, err)
	public, err := s.Create(ctx, api.CreatePromptRequest{Title: "public", IsPublic: true})
	require.NoError(t, err)

	assert.Equal(t, []string{public.ID, private.ID}, ids(s.Mine()))
	assert.Equal(t, []string{public.ID}, ids(s.Public()))

	// Локальное состояние совпадает с полным перечитыванием
	local := struct{ Mine, Public []api.Prompt }{s.Mine(), s.Public()}
	require.NoError(t, s.Reload(ctx, "token"))
	remote := struct{ Mine, Public []api.Prompt }{s.Mine(), s.Public()}
	assert.Empty(t, cmp.Diff(remote, local))
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p3", IsPublic: true},
		{ID: "p2", IsPublic: true, Title: "old"},
		{ID: "p1", IsPublic: false},
	}}
	s := newLoadedStore(t, m)
	require.Equal(t, []string{"p3", "p2"}, ids(s.Public()))

	tests := []struct {
		req        api.UpdatePromptRequest
		name       string
		id         string
		wantPublic []string
	}{
		{
			name:       "title change keeps public position",
			id:         "p2",
			req:        api.UpdatePromptRequest{Title: strPtr("new")},
			wantPublic: []string{"p3", "p2"},
		},
		{
			name:       "made private leaves public",
			id:         "p3",
			req:        api.UpdatePromptRequest{IsPublic: boolPtr(false)},
			wantPublic: []string{"p2"},
		},
		{
			name:       "made public is prepended",
			id:         "p1",
			req:        api.UpdatePromptRequest{IsPublic: boolPtr(true)},
			wantPublic: []string{"p1", "p2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := s.Update(ctx, tt.id, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPublic, ids(s.Public()))

			// В своих промптах порядок не меняется, объект заменяется серверным
			assert.Equal(t, []string{"p3", "p2", "p1"}, ids(s.Mine()))
			got, ok := s.Find(tt.id)
			require.True(t, ok)
			assert.Equal(t, *updated, got)
		})
	}

	p2, _ := s.Find("p2")
	assert.Equal(t, "new", p2.Title)
}

func TestStore_Update_ReplacesPublicInPlace(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p3", IsPublic: true},
		{ID: "p2", IsPublic: true},
		{ID: "p1", IsPublic: true, Title: "typo"},
	}}
	s := newLoadedStore(t, m)

	_, err := s.Update(ctx, "p1", api.UpdatePromptRequest{Title: strPtr("typo fix")})
	require.NoError(t, err)

	public := s.Public()
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(public))
	assert.Equal(t, "typo fix", public[2].Title)
}

func TestStore_ToggleTwice(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{{ID: "p1", IsPublic: false}}}
	s := newLoadedStore(t, m)

	toggled, err := s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, toggled.IsPublic)
	assert.Equal(t, []string{"p1"}, ids(s.Public()))

	toggled, err = s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, toggled.IsPublic)
	assert.Empty(t, s.Public())
	assert.Equal(t, []string{"p1"}, ids(s.Mine()))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p2", IsPublic: true},
		{ID: "p1", IsPublic: false},
	}}
	s := newLoadedStore(t, m)

	require.NoError(t, s.Delete(ctx, "p2"))
	assert.Equal(t, []string{"p1"}, ids(s.Mine()))
	assert.Empty(t, s.Public())

	_, ok := s.Find("p2")
	assert.False(t, ok)
}

func TestStore_FailedCallsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p2", IsPublic: true},
		{ID: "p1", IsPublic: false},
	}}
	s := newLoadedStore(t, m)

	beforeMine, beforePublic := s.Mine(), s.Public()
	m.setErr(errors.New("server down"))

	_, err := s.Create(ctx, api.CreatePromptRequest{Title: "x", IsPublic: true})
	assert.Error(t, err)
	_, err = s.Update(ctx, "p1", api.UpdatePromptRequest{IsPublic: boolPtr(true)})
	assert.Error(t, err)
	_, err = s.Toggle(ctx, "p2")
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, "p2"))

	assert.Empty(t, cmp.Diff(beforeMine, s.Mine()))
	assert.Empty(t, cmp.Diff(beforePublic, s.Public()))
}

func TestStore_ReturnsCopies(t *testing.T) {
	m := &mockAPI{prompts: []api.Prompt{{ID: "p1", Title: "original", IsPublic: true}}}
	s := newLoadedStore(t, m)

	mine := s.Mine()
	mine[0].Title = "changed"

	got, _ := s.Find("p1")
	assert.Equal(t, "original", got.Title)
}

func TestStore_FilterPublic(t *testing.T) {
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p4", Title: "Go code review", Category: "programming", Tags: []string{"go"}, IsPublic: true},
		{ID: "p3", Title: "Blog outline", Content: "About GOlang", Category: "writing", IsPublic: true},
		{ID: "p2", Title: "Email", Category: "marketing", Tags: []string{"Launch"}, IsPublic: true},
		{ID: "p1", Title: "Go private", Category: "programming", IsPublic: false},
	}}
	s := newLoadedStore(t, m)

	tests := []struct {
		name, search, category string
		want                   []string
	}{
		{name: "everything", want: []string{"p4", "p3", "p2"}},
		{name: "all category", category: "all", want: []string{"p4", "p3", "p2"}},
		{name: "search title and content", search: "go", want: []string{"p4", "p3"}},
		{name: "search tag case-insensitive", search: "launch", want: []string{"p2"}},
		{name: "category only", category: "writing", want: []string{"p3"}},
		{name: "category case-insensitive", category: "Writing", want: []string{"p3"}},
		{name: "all category any case", category: "All", want: []string{"p4", "p3", "p2"}},
		{name: "search and category", search: "go", category: "programming", want: []string{"p4"}},
		{name: "no match", search: "nothing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.FilterPublic(tt.search, tt.category)))
		})
	}
}

func TestStore_Stats(t *testing.T) {
	m := &mockAPI{prompts: []api.Prompt{
		{ID: "p3", IsPublic: true},
		{ID: "p2", IsPublic: false},
		{ID: "p1", IsPublic: false},
	}}
	s := newLoadedStore(t, m)

	assert.Equal(t, Stats{Total: 3, Public: 1, Private: 2}, s.Stats())

	_, err := s.Toggle(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Public: 2, Private: 1}, s.Stats())
}

func TestStore_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	m := &mockAPI{}
	s := newLoadedStore(t, m)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Create(ctx, api.CreatePromptRequest{Title: fmt.Sprint(i), IsPublic: i%2 == 0})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.FilterPublic("1", "")
			_ = s.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, Stats{Total: 20, Public: 10, Private: 10}, s.Stats())
}
