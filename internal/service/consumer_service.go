package service

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/entity"
	"kuliner-chatbot-be/internal/metrics"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/repository/contract"
	"kuliner-chatbot-be/pkg/catalog"
	"kuliner-chatbot-be/pkg/embedding"
)

// BatchResult reports what the consumer did with one published batch.
type BatchResult struct {
	BatchIndex int
	Stored     int
	Failed     int
	Err        error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Results() <-chan BatchResult
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	repository        contract.VenueEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
	results           chan BatchResult
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	repository contract.VenueEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		repository:        repository,
		embeddingProvider: embeddingProvider,
		logger:            log,
		results:           make(chan BatchResult, 16),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			res := cs.processMessage(ctx, msg)
			select {
			case cs.results <- res:
			case <-ctx.Done():
			}
		}
	}()

	return nil
}

func (cs *consumerService) Results() <-chan BatchResult {
	return cs.results
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) BatchResult {
	// Failed batches are acked too; the ingest run reports them instead of redelivering.
	defer msg.Ack()

	var payload dto.PublishEmbedVenueBatchMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Ingest", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return BatchResult{BatchIndex: -1, Err: err}
	}

	cs.logger.Info("Ingest", "Processing venue batch", map[string]interface{}{
		"batch": payload.BatchIndex,
		"rows":  len(payload.Rows),
	})

	result := BatchResult{BatchIndex: payload.BatchIndex}
	venues := make([]*entity.VenueEmbedding, 0, len(payload.Rows))
	for i, raw := range payload.Rows {
		row := catalog.Row(raw)
		content := catalog.PageContent(row)

		res, err := cs.embeddingProvider.Generate(ctx, content, embedding.TaskRetrievalDocument)
		if err != nil {
			cs.logger.Error("Ingest", "Failed to generate embedding", map[string]interface{}{
				"batch":       payload.BatchIndex,
				"row":         i,
				"nama_tempat": row.Get("nama_tempat"),
				"error":       err.Error(),
			})
			result.Failed++
			continue
		}

		now := time.Now()
		venues = append(venues, &entity.VenueEmbedding{
			Id:             uuid.New(),
			SourceKey:      catalog.SourceKey(row),
			Document:       content,
			EmbeddingValue: res.Embedding.Values,
			Metadata:       catalog.Metadata(row),
			CreatedAt:      now,
			UpdatedAt:      &now,
		})
	}

	if len(venues) > 0 {
		if err := cs.repository.UpsertBulk(ctx, venues); err != nil {
			cs.logger.Error("Ingest", "Failed to store venue batch", map[string]interface{}{
				"batch": payload.BatchIndex,
				"error": err.Error(),
			})
			result.Failed += len(venues)
			result.Err = err
			metrics.IngestDocuments.WithLabelValues(metrics.OutcomeError).Add(float64(result.Failed))
			return result
		}
	}
	result.Stored = len(venues)

	metrics.IngestDocuments.WithLabelValues(metrics.OutcomeSuccess).Add(float64(result.Stored))
	metrics.IngestDocuments.WithLabelValues(metrics.OutcomeError).Add(float64(result.Failed))

	cs.logger.Info("Ingest", "Venue batch stored", map[string]interface{}{
		"batch":  payload.BatchIndex,
		"stored": result.Stored,
		"failed": result.Failed,
	})
	return result
}
