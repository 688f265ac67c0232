package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_PrefixesAndNormalizes(t *testing.T) {
	var got ollamaEmbeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"embedding":[3,4]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	res, err := p.Generate(context.Background(), "soto banjar", TaskRetrievalQuery)
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", got.Model)
	assert.Equal(t, "search_query: soto banjar", got.Prompt)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, res.Embedding.Values, 1e-6)
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "x").Generate(context.Background(), "a", TaskRetrievalDocument)
	assert.Error(t, err)
}

func TestGeminiProvider_SendsTaskType(t *testing.T) {
	var got EmbeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.1,0.2]}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("key")
	p.BaseURL = srv.URL
	res, err := p.Generate(context.Background(), "bakso", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, TaskRetrievalDocument, got.TaskType)
	assert.Equal(t, "bakso", got.Content.Parts[0].Text)
	assert.Equal(t, []float32{0.1, 0.2}, res.Embedding.Values)
}

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) Generate(_ context.Context, text string, _ string) (*EmbeddingResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: []float32{float32(len(text))}}}, nil
}

func TestCachedProvider(t *testing.T) {
	inner := &countingProvider{}
	c := NewCachedProvider(inner, time.Minute)
	ctx := context.Background()

	a, err := c.Generate(ctx, "nasi kuning", TaskRetrievalQuery)
	require.NoError(t, err)
	b, err := c.Generate(ctx, "nasi kuning", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, inner.calls)

	_, err = c.Generate(ctx, "nasi kuning", TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("down")}
	c := NewCachedProvider(inner, time.Minute)

	_, err := c.Generate(context.Background(), "a", TaskRetrievalQuery)
	assert.Error(t, err)
	_, err = c.Generate(context.Background(), "a", TaskRetrievalQuery)
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}
