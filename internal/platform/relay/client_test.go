package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body["prompt"]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recipe":"[{\"name\":\"Toast\"}]"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	text, err := client.Generate(context.Background(), "make toast")
	require.NoError(t, err)

	assert.Equal(t, "make toast", gotPrompt)
	assert.Equal(t, `[{"name":"Toast"}]`, text)
}

func TestClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"error field", http.StatusInternalServerError, `{"error":"Gemini API Error: quota"}`, "Gemini API Error: quota"},
		{"plain error", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty recipe", http.StatusOK, `{"recipe":""}`, ErrEmptyRecipe.Error()},
		{"not json", http.StatusOK, `<html>`, "failed to parse relay response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_GenerateCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, time.Second).Generate(ctx, "p")
	assert.Error(t, err)
}
