package mapper

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"kuliner-chatbot-be/internal/entity"
	"kuliner-chatbot-be/internal/model"
	"kuliner-chatbot-be/pkg/store"
)

type VenueEmbeddingMapper struct{}

func NewVenueEmbeddingMapper() *VenueEmbeddingMapper {
	return &VenueEmbeddingMapper{}
}

func (m *VenueEmbeddingMapper) ToEntity(e *model.VenueEmbedding) *entity.VenueEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	metadata := map[string]interface{}{}
	if len(e.Metadata) > 0 {
		// Bad rows surface as venues without attributes; cards fall back to defaults.
		if err := json.Unmarshal(e.Metadata, &metadata); err != nil || metadata == nil {
			metadata = map[string]interface{}{}
		}
	}

	return &entity.VenueEmbedding{
		Id:             e.Id,
		SourceKey:      e.SourceKey,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *VenueEmbeddingMapper) ToModel(e *entity.VenueEmbedding) (*model.VenueEmbedding, error) {
	if e == nil {
		return nil, nil
	}

	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.VenueEmbedding{
		Id:             e.Id,
		SourceKey:      e.SourceKey,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       datatypes.JSON(metadata),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// ToDocument projects a venue into the retrieval shape.
func (m *VenueEmbeddingMapper) ToDocument(e *entity.VenueEmbedding, similarity float64) store.Document {
	return store.Document{
		ID:       e.Id.String(),
		Content:  e.Document,
		Score:    float32(similarity),
		Metadata: e.Metadata,
	}
}
