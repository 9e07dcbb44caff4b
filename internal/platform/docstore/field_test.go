package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeField(t *testing.T) {
	doc := &Document{ID: "u1", Data: map[string]any{
		"pantry": []any{
			map[string]any{"id": "1", "name": "Rice", "quantity": "1 bag"},
		},
		"diet": "vegan",
	}}

	var items []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	found, err := doc.DecodeField("pantry", &items)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, "1 bag", items[0].Quantity)

	var diet string
	found, err = doc.DecodeField("diet", &diet)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "vegan", diet)
}

func TestDecodeField_Missing(t *testing.T) {
	doc := &Document{ID: "u1", Data: map[string]any{}}

	var s string
	found, err := doc.DecodeField("shoppingList", &s)
	assert.NoError(t, err)
	assert.False(t, found)

	var nilDoc *Document
	found, err = nilDoc.DecodeField("pantry", &s)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestDecodeField_WrongShape(t *testing.T) {
	doc := &Document{ID: "u1", Data: map[string]any{"pantry": "not a list"}}

	var items []map[string]string
	_, err := doc.DecodeField("pantry", &items)
	assert.Error(t, err)
}
