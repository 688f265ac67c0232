package service

import (
	"context"
	"errors"
	"sync"

	"kuliner-chatbot-be/internal/entity"
	"kuliner-chatbot-be/internal/repository/contract"
	"kuliner-chatbot-be/internal/repository/specification"
	"kuliner-chatbot-be/pkg/embedding"
	"kuliner-chatbot-be/pkg/events"
	"kuliner-chatbot-be/pkg/rag/executor"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	calls []string
	tasks []string
	fail  func(text string) bool
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	f.tasks = append(f.tasks, taskType)
	if f.fail != nil && f.fail(text) {
		return nil, errors.New("embedding backend down")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeVenueRepo struct {
	mu        sync.Mutex
	upserted  []*entity.VenueEmbedding
	deleted   int
	upsertErr error
	searchErr error
	lastSpecs []specification.Specification
	lastLimit int
	results   []*contract.ScoredVenueEmbedding
}

func (f *fakeVenueRepo) UpsertBulk(ctx context.Context, embeddings []*entity.VenueEmbedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, embeddings...)
	return nil
}

func (f *fakeVenueRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.upserted)), nil
}

func (f *fakeVenueRepo) DeleteAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted++
	f.upserted = nil
	return nil
}

func (f *fakeVenueRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredVenueEmbedding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSpecs = specs
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeVenueRepo) stored() []*entity.VenueEmbedding {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.VenueEmbedding(nil), f.upserted...)
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

type fakePipeline struct {
	sessionID string
	query     string
	result    *executor.ExecutionResult
	err       error
}

func (f *fakePipeline) Execute(ctx context.Context, sessionID, query string) (*executor.ExecutionResult, error) {
	f.sessionID = sessionID
	f.query = query
	return f.result, f.err
}
