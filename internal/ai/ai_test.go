package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/config"
)

func TestCleanJSONString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"city":"Rome"}`, `{"city":"Rome"}`},
		{"json fence", "```json\n{\"city\":\"Rome\"}\n```", `{"city":"Rome"}`},
		{"bare fence", "```\n{}\n```", `{}`},
		{"whitespace", "  \n{}\n ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONString(tt.in))
		})
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var gotModel string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, SystemPrompt, body.Messages[0].Content)
		assert.Equal(t, "plan Rome", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Visit the Colosseum."}}]}`))
	}))
	defer ts.Close()

	p, err := NewOpenAIProvider("sk-test", ts.URL, "gpt-4")
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "plan Rome")
	require.NoError(t, err)
	assert.Equal(t, "Visit the Colosseum.", out)
	assert.Equal(t, "gpt-4", gotModel)
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	p, err := NewOpenAIProvider("sk-test", ts.URL, "gpt-4")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hi")
	require.Error(t, err)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), config.AIConfig{Provider: "llama"})
	require.Error(t, err)
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), config.AIConfig{Provider: "openai"})
	require.Error(t, err)
}
