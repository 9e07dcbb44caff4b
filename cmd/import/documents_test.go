package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocuments(t *testing.T) {
	input := `[
		{"name": "Pancakes", "time": 20, "author": {"referenceValue": "users/abc"},
		 "related": [{"referenceValue": "Recipes/r2"}, {"note": "plain"}]},
		{"title": "Soup", "meta": {"referenceValue": ""}}
	]`

	docs, err := readDocuments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "users/abc", docs[0]["author"])
	assert.Equal(t, []any{"Recipes/r2", map[string]any{"note": "plain"}}, docs[0]["related"])
	assert.Equal(t, json.Number("20"), docs[0]["time"])
	assert.Equal(t, map[string]any{"referenceValue": ""}, docs[1]["meta"])
}

func TestReadDocuments_Rejects(t *testing.T) {
	_, err := readDocuments(strings.NewReader(`{"name": "not an array"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = readDocuments(strings.NewReader(`[{"name": "ok"}, 3]`))
	assert.Error(t, err)

	_, err = readDocuments(strings.NewReader(`[{`))
	assert.Error(t, err)
}
