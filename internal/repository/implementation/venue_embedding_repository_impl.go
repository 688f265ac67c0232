package implementation

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kuliner-chatbot-be/internal/entity"
	"kuliner-chatbot-be/internal/mapper"
	"kuliner-chatbot-be/internal/model"
	"kuliner-chatbot-be/internal/repository/contract"
	"kuliner-chatbot-be/internal/repository/specification"
)

type VenueEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VenueEmbeddingMapper
}

func NewVenueEmbeddingRepository(db *gorm.DB) contract.VenueEmbeddingRepository {
	return &VenueEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewVenueEmbeddingMapper(),
	}
}

func (r *VenueEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VenueEmbeddingRepositoryImpl) UpsertBulk(ctx context.Context, embeddings []*entity.VenueEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := make([]*model.VenueEmbedding, len(embeddings))
	for i, e := range embeddings {
		m, err := r.mapper.ToModel(e)
		if err != nil {
			return err
		}
		models[i] = m
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "metadata", "updated_at"}),
		}).
		Create(models).Error
	if err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *VenueEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.VenueEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *VenueEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.VenueEmbedding{}).Error
}

func (r *VenueEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredVenueEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector cosine distance is 1 - cosine_similarity
	type result struct {
		model.VenueEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("venue_embeddings").
		Select("venue_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector)
	query = r.applySpecifications(query, specs...)

	err := query.
		Order(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding_value <=> ?", Vars: []interface{}{queryVector}},
		}).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredVenueEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredVenueEmbedding{
			Embedding:  r.mapper.ToEntity(&res.VenueEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
