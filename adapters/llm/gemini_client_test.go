package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(Config{})
	assert.Error(t, err)
}

func TestGeminiClientAnswer(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"O total de vendas é 300."}]}}]}`))
	}))
	defer server.Close()

	client, err := NewGeminiClient(Config{
		APIKey:      "test-key",
		Model:       "gemini-2.0-flash",
		BaseURL:     server.URL,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	answer, err := client.Answer(context.Background(), "qual o total de vendas?")
	require.NoError(t, err)
	assert.Equal(t, "O total de vendas é 300.", answer)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
}

func TestGeminiClientAnswerHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewGeminiClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Answer(context.Background(), "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini http 429")
}

func TestGeminiClientAnswerEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client, err := NewGeminiClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Answer(context.Background(), "pergunta")
	assert.Error(t, err)
}
