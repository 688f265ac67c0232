package contract

import (
	"context"

	"kuliner-chatbot-be/internal/entity"
	"kuliner-chatbot-be/internal/repository/specification"
)

// ScoredVenueEmbedding wraps VenueEmbedding with its similarity score
type ScoredVenueEmbedding struct {
	Embedding  *entity.VenueEmbedding
	Similarity float64 // 1.0 = identical
}

type VenueEmbeddingRepository interface {
	// UpsertBulk inserts venues, replacing rows with the same SourceKey.
	UpsertBulk(ctx context.Context, embeddings []*entity.VenueEmbedding) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAll(ctx context.Context) error
	// SearchSimilarWithScore returns up to limit venues ordered by cosine similarity.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*ScoredVenueEmbedding, error)
}
