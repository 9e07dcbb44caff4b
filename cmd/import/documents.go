package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotArray is returned when the input is not a top-level JSON array.
var ErrNotArray = errors.New("input file must be a JSON array")

// readDocuments decodes a top-level array of objects and rewrites reference
// wrappers inside them.
func readDocuments(r io.Reader) ([]map[string]any, error) {
	var raw any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	docs := make([]map[string]any, 0, len(items))
	for i, item := range items {
		doc, ok := convertReferences(item).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document %d is not an object", i)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// convertReferences replaces every {"referenceValue": "path"} object with its
// path string, walking arrays and objects.
func convertReferences(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = convertReferences(item)
		}
		return out
	case map[string]any:
		if ref, ok := t["referenceValue"].(string); ok && ref != "" {
			return ref
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = convertReferences(item)
		}
		return out
	default:
		return v
	}
}
