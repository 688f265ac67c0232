package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type VenueEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceKey      string          `gorm:"type:varchar(512);uniqueIndex;not null"` // catalog row identity, used for upserts
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / Gemini text-embedding-004
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (VenueEmbedding) TableName() string {
	return "venue_embeddings"
}
