package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Recommend re-canvassing the park."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), Request{
		Prompt:            BuildPrompt(phantom()),
		SystemInstruction: SystemInstruction,
		Temperature:       DefaultTemperature,
	})
	require.NoError(t, err)
	assert.Equal(t, "Recommend re-canvassing the park.", text)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemInstruction, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Status: Cold Case")
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	g, err := NewOpenAIGenerator(OpenAIConfig{BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, FallbackEmpty, NewSummarizer(g).Summarize(context.Background(), phantom()))
}

func TestOpenAIGenerator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: url + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, FallbackError, NewSummarizer(g).Summarize(context.Background(), phantom()))
}

func TestNewOpenAIGenerator_RequiresKeyOrBaseURL(t *testing.T) {
	_, err := NewOpenAIGenerator(OpenAIConfig{})
	assert.Error(t, err)
}
