package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.AIConfig{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		Model:       "gpt-4o",
		MaxTokens:   500,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}, zap.NewNop())
}

func completionReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestGenerateRecipe(t *testing.T) {
	reply := `{"title": "Pancakes", "content": "Mix and fry.", "ingredients": "flour, milk , eggs,"}`
	client := newTestClient(t, completionReply(reply))

	rec, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{
		Prompt: "breakfast",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", rec.Title)
	assert.Equal(t, "Mix and fry.", rec.Content)
	assert.Equal(t, []string{"flour", "milk", "eggs"}, rec.Ingredients)
}

func TestGenerateRecipeSendsRestrictions(t *testing.T) {
	var captured chatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		completionReply(`{"title": "Salad", "content": "Toss.", "ingredients": "lettuce"}`)(w, r)
	})

	_, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{
		Prompt:              "lunch",
		Ingredients:         []string{"lettuce"},
		DietaryRestrictions: []string{"peanuts"},
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[1].Content, "lettuce")
	assert.Contains(t, captured.Messages[1].Content, "peanuts")
}

func TestGenerateRecipeStripsMarkdownFences(t *testing.T) {
	reply := "```json\n{\"title\": \"Soup\", \"content\": \"Simmer.\", \"ingredients\": \"water\"}\n```"
	client := newTestClient(t, completionReply(reply))

	rec, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{Prompt: "soup"})
	require.NoError(t, err)
	assert.Equal(t, "Soup", rec.Title)
}

func TestGenerateRecipeRejectsUnparseableReply(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"prose", "Here is a lovely recipe for you!"},
		{"missing title", `{"content": "Mix.", "ingredients": "flour"}`},
		{"missing content", `{"title": "Cake", "ingredients": "flour"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, completionReply(tc.reply))
			_, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{Prompt: "x"})
			assert.Error(t, err)
		})
	}
}

func TestGenerateRecipeProviderFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{Prompt: "x"})
	assert.Error(t, err)
}

func TestGenerateRecipeNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.GenerateRecipe(context.Background(), outbound.GenerateRequest{Prompt: "x"})
	assert.Error(t, err)
}
