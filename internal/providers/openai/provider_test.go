package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx/slack-summarizer/internal/config"
	"github.com/agentx/slack-summarizer/internal/providers"
)

func floatPtr(f float32) *float32 { return &f }
func intPtr(i int) *int           { return &i }

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(config.CompletionConfig{})
	assert.Error(t, err)
}

func TestProvider_Complete(t *testing.T) {
	var received map[string]interface{}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "meta-llama/Llama-3.3-70B-Instruct",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "*Topic*\n- point"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`))
	}))
	defer server.Close()

	p, err := NewProvider(config.CompletionConfig{
		APIKey:  "sk-test",
		BaseURL: server.URL + "/v1/",
		Model:   "meta-llama/Llama-3.3-70B-Instruct",
	})
	require.NoError(t, err)
	require.NoError(t, p.ValidateConfig())

	resp, err := p.Complete(context.Background(), providers.CompletionRequest{
		Messages:    []providers.Message{{Role: providers.RoleSystem, Content: "summarize this"}},
		Temperature: floatPtr(0.7),
		MaxTokens:   intPtr(30000),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", authHeader)
	assert.Equal(t, "meta-llama/Llama-3.3-70B-Instruct", received["model"])
	assert.EqualValues(t, 30000, received["max_tokens"])
	assert.InDelta(t, 0.7, received["temperature"], 0.0001)
	messages, ok := received["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "summarize this", first["content"])

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "*Topic*\n- point", resp.Choices[0].Message.Content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	assert.Equal(t, 16, resp.Usage.TotalTokens)
}

func TestProvider_CompleteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	p, err := NewProvider(config.CompletionConfig{APIKey: "bad", BaseURL: server.URL + "/v1", Model: "m"})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), providers.CompletionRequest{
		Messages: []providers.Message{{Role: providers.RoleSystem, Content: "x"}},
	})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}
