package service

import (
	"context"
	"fmt"

	"kuliner-chatbot-be/internal/mapper"
	"kuliner-chatbot-be/internal/repository/contract"
	"kuliner-chatbot-be/internal/repository/specification"
	"kuliner-chatbot-be/pkg/embedding"
	"kuliner-chatbot-be/pkg/rag/retrieval"
	"kuliner-chatbot-be/pkg/store"
)

// venueVectorStore answers retrieval queries from the pgvector table.
type venueVectorStore struct {
	embeddingProvider embedding.EmbeddingProvider
	repository        contract.VenueEmbeddingRepository
	mapper            *mapper.VenueEmbeddingMapper
}

func NewVenueVectorStore(
	embeddingProvider embedding.EmbeddingProvider,
	repository contract.VenueEmbeddingRepository,
) retrieval.VectorStore {
	return &venueVectorStore{
		embeddingProvider: embeddingProvider,
		repository:        repository,
		mapper:            mapper.NewVenueEmbeddingMapper(),
	}
}

func (s *venueVectorStore) SimilaritySearch(ctx context.Context, query string, k int, filter *retrieval.Filter) ([]store.Document, error) {
	if k <= 0 {
		return []store.Document{}, nil
	}

	res, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.repository.SearchSimilarWithScore(ctx, res.Embedding.Values, k, FilterSpecifications(filter)...)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	docs := make([]store.Document, 0, len(scored))
	for _, sc := range scored {
		if sc == nil || sc.Embedding == nil {
			continue
		}
		docs = append(docs, s.mapper.ToDocument(sc.Embedding, sc.Similarity))
	}
	return docs, nil
}

// FilterSpecifications translates a retrieval filter into repository specifications.
func FilterSpecifications(filter *retrieval.Filter) []specification.Specification {
	if filter == nil {
		return nil
	}
	specs := make([]specification.Specification, 0, len(filter.Must))
	for _, cond := range filter.Must {
		if len(cond.Any) > 0 {
			specs = append(specs, specification.MetadataContainsAny{Key: cond.Key, Values: cond.Any})
			continue
		}
		specs = append(specs, specification.MetadataEquals{Key: cond.Key, Value: cond.Value})
	}
	return specs
}
