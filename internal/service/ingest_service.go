package service

import (
	"context"
	"fmt"
	"time"

	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/repository/contract"
	"kuliner-chatbot-be/pkg/catalog"
	"kuliner-chatbot-be/pkg/events"
)

const DefaultIngestBatchSize = 10

type IngestOptions struct {
	Source     string
	BatchSize  int
	Reset      bool
	BatchDelay time.Duration
	// OnBatch is called after each batch completes. Optional.
	OnBatch func(total int, res BatchResult)
}

type IngestReport struct {
	Rows    int
	Batches int
	Stored  int
	Failed  int
}

type IIngestService interface {
	Ingest(ctx context.Context, c *catalog.Catalog, opts IngestOptions) (*IngestReport, error)
}

type ingestService struct {
	publisher      IPublisherService
	results        <-chan BatchResult
	repository     contract.VenueEmbeddingRepository
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewIngestService feeds catalog batches through the publisher and waits for
// the consumer behind results to finish each one. eventPublisher may be nil.
func NewIngestService(
	publisher IPublisherService,
	results <-chan BatchResult,
	repository contract.VenueEmbeddingRepository,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		publisher:      publisher,
		results:        results,
		repository:     repository,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *ingestService) Ingest(ctx context.Context, c *catalog.Catalog, opts IngestOptions) (*IngestReport, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultIngestBatchSize
	}

	if opts.Reset {
		if err := s.repository.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("reset venue embeddings: %w", err)
		}
		s.logger.Info("Ingest", "Existing venue embeddings removed", nil)
	}

	report := &IngestReport{Rows: len(c.Rows)}
	total := (len(c.Rows) + opts.BatchSize - 1) / opts.BatchSize

	for start, index := 0, 0; start < len(c.Rows); start, index = start+opts.BatchSize, index+1 {
		end := start + opts.BatchSize
		if end > len(c.Rows) {
			end = len(c.Rows)
		}

		rows := make([]map[string]string, 0, end-start)
		for _, r := range c.Rows[start:end] {
			rows = append(rows, r)
		}

		err := s.publisher.SendMessage(ctx, dto.PublishEmbedVenueBatchMessage{
			BatchIndex: index,
			Source:     opts.Source,
			Rows:       rows,
		})
		if err != nil {
			return report, fmt.Errorf("publish batch %d: %w", index, err)
		}

		var res BatchResult
		select {
		case res = <-s.results:
		case <-ctx.Done():
			return report, ctx.Err()
		}

		report.Batches++
		report.Stored += res.Stored
		report.Failed += res.Failed
		if opts.OnBatch != nil {
			opts.OnBatch(total, res)
		}

		if opts.BatchDelay > 0 && end < len(c.Rows) {
			select {
			case <-time.After(opts.BatchDelay):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}
	}

	s.logger.Info("Ingest", "Catalog ingested", map[string]interface{}{
		"source":  opts.Source,
		"rows":    report.Rows,
		"batches": report.Batches,
		"stored":  report.Stored,
		"failed":  report.Failed,
	})

	if s.eventPublisher != nil {
		event := events.CatalogIngested(opts.Source, report.Rows, report.Stored, report.Failed)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Ingest", "Failed to publish event", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	}

	return report, nil
}
