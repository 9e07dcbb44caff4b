package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"mealmind/internal/pantry"
	"mealmind/internal/platform/cache"
	"mealmind/internal/profile"
	"mealmind/internal/recipe"
)

// mockGenerator is a mock of the model client.
type mockGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// mockCatalog is a mock of the recipe catalog.
type mockCatalog struct {
	mu         sync.Mutex
	recipes    []recipe.Recipe
	err        error
	imagePaths map[string]string
}

func (m *mockCatalog) List(ctx context.Context) ([]recipe.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes, nil
}

func (m *mockCatalog) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.recipes {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, recipe.ErrNotFound
}

func (m *mockCatalog) SetImagePath(ctx context.Context, id, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.imagePaths == nil {
		m.imagePaths = map[string]string{}
	}
	m.imagePaths[id] = path
	return nil
}

// mockLists is a mock of the pantry and shopping list store.
type mockLists struct {
	mu       sync.Mutex
	pantries map[string][]pantry.Item
	shopping map[string][]pantry.Item
	loadErr  error
	saves    int
}

func newMockLists() *mockLists {
	return &mockLists{pantries: map[string][]pantry.Item{}, shopping: map[string][]pantry.Item{}}
}

func (m *mockLists) Pantry(ctx context.Context, userID string) ([]pantry.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]pantry.Item(nil), m.pantries[userID]...), nil
}

func (m *mockLists) SavePantry(ctx context.Context, userID string, items []pantry.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.pantries[userID] = items
	return nil
}

func (m *mockLists) ShoppingList(ctx context.Context, userID string) ([]pantry.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]pantry.Item(nil), m.shopping[userID]...), nil
}

func (m *mockLists) SaveShoppingList(ctx context.Context, userID string, items []pantry.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.shopping[userID] = items
	return nil
}

// mockProfiles is a mock of the profile store.
type mockProfiles struct {
	profiles map[string]profile.Profile
}

func (m *mockProfiles) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	p := m.profiles[userID]
	return &p, nil
}

func (m *mockProfiles) Save(ctx context.Context, userID string, p *profile.Profile) error {
	m.profiles[userID] = *p
	return nil
}

// tokenValidator accepts "token-<user>" bearer tokens.
type tokenValidator struct{}

func (tokenValidator) ValidateToken(token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", errors.New("bad token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

// mockLimiter allows a fixed number of requests in total.
type mockLimiter struct {
	limit int
	count int
	err   error
}

func (m *mockLimiter) Allow(ctx context.Context, userID string) (cache.Decision, error) {
	if m.err != nil {
		return cache.Decision{}, m.err
	}
	m.count++
	remaining := m.limit - m.count
	if remaining < 0 {
		remaining = 0
	}
	return cache.Decision{
		Allowed:   m.count <= m.limit,
		Limit:     m.limit,
		Remaining: remaining,
		Reset:     time.Now().Add(time.Minute),
	}, nil
}

func (m *mockLimiter) Window() time.Duration { return time.Minute }

type testEnv struct {
	router    *gin.Engine
	handler   *Handler
	generator *mockGenerator
	catalog   *mockCatalog
	lists     *mockLists
	profiles  *mockProfiles
}

func newTestEnv(t *testing.T, limiter RateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		generator: &mockGenerator{},
		catalog: &mockCatalog{recipes: []recipe.Recipe{
			{ID: "r1", Name: "Tomato Soup", Cost: "low", Time: 20, SkillLevel: "beginner",
				Ingredients: []string{"2 tomatoes", "1 onion"}, Instructions: "Simmer."},
			{ID: "r2", Name: "Beef Stew", Cost: "high", Time: 120, SkillLevel: "advanced",
				Ingredients: []string{"500 g beef"}, Instructions: "Braise."},
		}},
		lists:    newMockLists(),
		profiles: &mockProfiles{profiles: map[string]profile.Profile{}},
	}
	env.handler = NewHandler(Dependencies{
		Generator:         env.generator,
		Recipes:           env.catalog,
		Lists:             env.lists,
		Profiles:          env.profiles,
		Images:            ImageOptions{Dir: t.TempDir(), Width: 800, MaxSize: 1 << 20},
		GenerationTimeout: time.Second,
	})
	env.router = NewRouter(env.handler, RouterOptions{
		AllowOrigins: []string{"http://localhost:5173"},
		Validator:    tokenValidator{},
		Limiter:      limiter,
	})
	return env
}

// do sends a request as user (empty for anonymous) and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer token-"+user)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
