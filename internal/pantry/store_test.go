package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmind/internal/platform/docstore"
)

// mockDocuments keeps documents in memory, round-tripping values through JSON
// like the real store does.
type mockDocuments struct {
	docs     map[string]map[string]any
	getError error
}

func newMockDocuments() *mockDocuments {
	return &mockDocuments{docs: make(map[string]map[string]any)}
}

func (m *mockDocuments) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	data, ok := m.docs[collection+"/"+id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &docstore.Document{ID: id, Data: data}, nil
}

func (m *mockDocuments) MergeField(ctx context.Context, collection, id, field string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	key := collection + "/" + id
	if m.docs[key] == nil {
		m.docs[key] = map[string]any{}
	}
	m.docs[key][field] = decoded
	return nil
}

func TestStore_PantryRoundTrip(t *testing.T) {
	docs := newMockDocuments()
	store := NewStore(docs)
	ctx := context.Background()

	items := []Item{{ID: "1", Name: "Tomatoes", Quantity: "5"}}
	require.NoError(t, store.SavePantry(ctx, "user-1", items))

	got, err := store.Pantry(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// The shopping list lives in the same document but is independent.
	list, err := store.ShoppingList(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestStore_ShoppingListRoundTrip(t *testing.T) {
	docs := newMockDocuments()
	store := NewStore(docs)
	ctx := context.Background()

	require.NoError(t, store.SavePantry(ctx, "user-1", []Item{{ID: "1", Name: "Rice", Quantity: "1 bag"}}))
	require.NoError(t, store.SaveShoppingList(ctx, "user-1", []Item{{ID: "2", Name: "Milk", Quantity: "1 gallon"}}))

	pantryItems, err := store.Pantry(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, pantryItems, 1)
	assert.Equal(t, "Rice", pantryItems[0].Name)

	list, err := store.ShoppingList(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Milk", list[0].Name)
}

func TestStore_UnknownUser(t *testing.T) {
	store := NewStore(newMockDocuments())

	got, err := store.Pantry(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SaveNil(t *testing.T) {
	docs := newMockDocuments()
	store := NewStore(docs)

	require.NoError(t, store.SavePantry(context.Background(), "user-1", nil))
	assert.Equal(t, []any{}, docs.docs["users/user-1"][PantryField])
}

func TestStore_GetError(t *testing.T) {
	docs := newMockDocuments()
	docs.getError = errors.New("connection refused")
	store := NewStore(docs)

	_, err := store.Pantry(context.Background(), "user-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
