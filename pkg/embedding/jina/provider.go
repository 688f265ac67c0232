package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kuliner-chatbot-be/pkg/embedding"
)

type JinaProvider struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
	client     *http.Client
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Task       string   `json:"task,omitempty"`
	Dimensions int      `json:"dimensions,omitempty"`
	Input      []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var _ embedding.EmbeddingProvider = &JinaProvider{}

// NewJinaProvider uses the multilingual v3 model truncated to 768
// dimensions so it fits the venue_embeddings column.
func NewJinaProvider(apiKey string) *JinaProvider {
	return &JinaProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.jina.ai/v1/embeddings",
		model:      "jina-embeddings-v3",
		dimensions: 768,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *JinaProvider) WithBaseURL(url string) *JinaProvider {
	p.baseURL = url
	return p
}

func jinaTask(taskType string) string {
	switch taskType {
	case embedding.TaskRetrievalQuery:
		return "retrieval.query"
	case embedding.TaskRetrievalDocument:
		return "retrieval.passage"
	default:
		return ""
	}
}

func (p *JinaProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	reqBody := embeddingRequest{
		Model:      p.model,
		Task:       jinaTask(taskType),
		Dimensions: p.dimensions,
		Input:      []string{text},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var jinaResp embeddingResponse
	if err := json.Unmarshal(bodyBytes, &jinaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if jinaResp.Error != nil {
		return nil, fmt.Errorf("jina api returned error: %s", jinaResp.Error.Message)
	}

	if len(jinaResp.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from jina api")
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: jinaResp.Data[0].Embedding,
		},
	}, nil
}
