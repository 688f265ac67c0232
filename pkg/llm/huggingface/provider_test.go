package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/pkg/llm"
)

func TestHuggingFaceProvider_Chat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Siap!"}}]}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf_token", srv.URL, "meta-llama/Llama-3.1-8B-Instruct", llm.WithMaxTokens(2048))
	out, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "halo"}})
	require.NoError(t, err)

	assert.Equal(t, "Siap!", out)
	assert.Equal(t, 2048, got.MaxTokens)
	assert.Equal(t, "meta-llama/Llama-3.1-8B-Instruct", got.Model)
}

func TestHuggingFaceProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[],"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := NewHuggingFaceProvider("", srv.URL, "m").Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "rate limited")
}
