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

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.Error(t, err)
}

func TestNewOpenRouterProvider_ModelPassThrough(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var got http.Header
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "meta-llama/llama-3-8b",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Walk me through your last deployment."},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: srv.URL + "/api/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Ask about deployments."}},
		MaxTokens: 64,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/chat/completions", path)
	assert.Equal(t, "mockprep", got.Get("X-Title"))
	assert.Equal(t, openRouterReferer, got.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
	assert.Equal(t, "Walk me through your last deployment.", resp.Text())
	assert.Equal(t, 20, resp.Usage.TotalTokens)
}

func TestOpenRouterProvider_BadRequestIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "unknown model", "code": 400},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "nope/nope", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Contains(t, err.Error(), "openrouter")
}
