package entity

import (
	"time"

	"github.com/google/uuid"
)

type VenueEmbedding struct {
	Id             uuid.UUID
	SourceKey      string
	Document       string
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
