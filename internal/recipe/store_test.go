package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmind/internal/platform/docstore"
)

// mockDocuments is a mock of the document store.
type mockDocuments struct {
	docs        []docstore.Document
	returnError error
	merged      map[string]any
}

func (m *mockDocuments) FetchAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.docs, nil
}

func (m *mockDocuments) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	for _, d := range m.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (m *mockDocuments) MergeField(ctx context.Context, collection, id, field string, value any) error {
	if m.merged == nil {
		m.merged = map[string]any{}
	}
	m.merged[collection+"/"+id+"."+field] = value
	return nil
}

func TestCatalog_List(t *testing.T) {
	docs := &mockDocuments{docs: []docstore.Document{
		{ID: "a", Data: map[string]any{"name": "Pasta Primavera", "cost": "Low", "time": float64(25), "skillLevel": "beginner"}},
		{ID: "b", Data: map[string]any{"title": "Tomato Rice", "costOfIngredients": "low", "timeTakenToCook": float64(35)}},
	}}
	catalog := NewCatalog(docs, NewNormalizer(&sequenceRand{}))

	recipes, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "a", recipes[0].ID)
	assert.Equal(t, "low", recipes[0].Cost)
	assert.Equal(t, "Tomato Rice", recipes[1].Name)
	assert.Equal(t, 35, recipes[1].Time)
}

func TestCatalog_ListError(t *testing.T) {
	docs := &mockDocuments{returnError: context.DeadlineExceeded}
	catalog := NewCatalog(docs, NewNormalizer(nil))

	_, err := catalog.List(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCatalog_Get(t *testing.T) {
	docs := &mockDocuments{docs: []docstore.Document{
		{ID: "a", Data: map[string]any{"name": "Pasta", "cost": "low", "time": float64(25)}},
	}}
	catalog := NewCatalog(docs, NewNormalizer(&sequenceRand{}))

	r, err := catalog.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Pasta", r.Name)

	_, err = catalog.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	docs.returnError = errors.New("boom")
	_, err = catalog.Get(context.Background(), "a")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCatalog_SetImagePath(t *testing.T) {
	docs := &mockDocuments{docs: []docstore.Document{
		{ID: "a", Data: map[string]any{"name": "Pasta", "cost": "low", "time": float64(25)}},
	}}
	catalog := NewCatalog(docs, NewNormalizer(&sequenceRand{}))

	require.NoError(t, catalog.SetImagePath(context.Background(), "a", "images/a.jpg"))
	assert.Equal(t, "images/a.jpg", docs.merged["Recipes/a.imagePath"])

	err := catalog.SetImagePath(context.Background(), "missing", "images/x.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}
