package embedding

import "context"

// Task types understood by the providers. Queries and documents are
// embedded asymmetrically where the backend supports it.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}
