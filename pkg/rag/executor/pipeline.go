package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/metrics"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/rag/generation"
	"kuliner-chatbot-be/pkg/rag/intent"
	"kuliner-chatbot-be/pkg/rag/response"
	"kuliner-chatbot-be/pkg/rag/retrieval"
	"kuliner-chatbot-be/pkg/rag/state"
	"kuliner-chatbot-be/pkg/store"
)

const moduleName = "Pipeline"

var (
	ErrGeneration        = errors.New("generation failed")
	ErrConversationStore = errors.New("conversation store failed")
)

// Pipeline runs one chat turn: intent, retrieval, generation, parsing.
type Pipeline struct {
	extractor     *intent.Extractor
	retriever     *retrieval.Retriever
	generator     *generation.Generator
	parser        *response.Parser
	conversations state.ConversationStore
	locker        *state.KeyedLocker
	logger        logger.ILogger
	tracer        trace.Tracer
	location      *time.Location
	now           func() time.Time
}

type Option func(*Pipeline)

// WithClock overrides the wall clock used for time-of-day intent.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithTimezoneOffset sets the local zone as hours east of UTC. Default is WITA.
func WithTimezoneOffset(hours int) Option {
	return func(p *Pipeline) {
		p.location = time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
	}
}

func NewPipeline(
	extractor *intent.Extractor,
	retriever *retrieval.Retriever,
	generator *generation.Generator,
	parser *response.Parser,
	conversations state.ConversationStore,
	log logger.ILogger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		extractor:     extractor,
		retriever:     retriever,
		generator:     generator,
		parser:        parser,
		conversations: conversations,
		locker:        state.NewKeyedLocker(),
		logger:        log,
		tracer:        otel.Tracer("kuliner-chatbot-be/rag"),
		location:      time.FixedZone("WITA", 8*3600),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ExecutionResult struct {
	Summary       string
	Cards         []dto.Card
	FullText      string
	Intent        intent.QueryIntent
	DocumentCount int
}

// Execute processes query within sessionID. Turns of the same session run
// one at a time.
func (p *Pipeline) Execute(ctx context.Context, sessionID, query string) (*ExecutionResult, error) {
	unlock := p.locker.Lock(sessionID)
	defer unlock()

	res, err := p.execute(ctx, sessionID, query)
	if err != nil {
		metrics.RagRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if res.DocumentCount == 0 {
		outcome = metrics.OutcomeNoResults
	}
	metrics.RagRequests.WithLabelValues(outcome).Inc()
	metrics.RagCardsReturned.Observe(float64(len(res.Cards)))
	return res, nil
}

func (p *Pipeline) execute(ctx context.Context, sessionID, query string) (*ExecutionResult, error) {
	history, err := p.conversations.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %v", ErrConversationStore, err)
	}

	st := &state.PipelineState{
		SessionID:   sessionID,
		History:     history,
		Query:       query,
		CurrentTime: p.now().In(p.location).Format("15:04"),
	}

	p.logger.Info(moduleName, "[PHASE 1] Extracting intent", map[string]interface{}{
		"session_id":   sessionID,
		"current_time": st.CurrentTime,
		"history":      len(history),
	})
	p.stage(ctx, "intent", func(ctx context.Context, span trace.Span) error {
		st.Intent = p.extractor.Extract(query, st.CurrentTime)
		span.SetAttributes(
			attribute.Int("rag.count", st.Intent.Count),
			attribute.String("rag.meal_category", st.Intent.MealCategory),
			attribute.String("rag.city", st.Intent.City),
		)
		return nil
	})

	p.logger.Info(moduleName, "[PHASE 2] Retrieving", map[string]interface{}{
		"count":    st.Intent.Count,
		"category": st.Intent.MealCategory,
		"city":     st.Intent.City,
	})
	err = p.stage(ctx, "retrieve", func(ctx context.Context, span trace.Span) error {
		result, err := p.retriever.Retrieve(ctx, st.Intent, query)
		if err != nil {
			return err
		}
		st.ContextText = result.ContextText
		st.Documents = result.Documents
		span.SetAttributes(
			attribute.Int("rag.documents", len(result.Documents)),
			attribute.Int("rag.tiers", len(result.Tiers)),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	p.logger.Info(moduleName, "[PHASE 3] Generating", map[string]interface{}{
		"documents": st.FoundCount(),
	})
	var fullText string
	err = p.stage(ctx, "generate", func(ctx context.Context, span trace.Span) error {
		out, err := p.generator.Generate(ctx, st)
		if err != nil {
			return err
		}
		fullText = out
		span.SetAttributes(attribute.Bool("rag.apology", st.FoundCount() == 0))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	err = p.conversations.Append(ctx, sessionID,
		store.Message{Role: store.RoleHuman, Content: query},
		store.Message{Role: store.RoleAssistant, Content: fullText},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: append turn: %v", ErrConversationStore, err)
	}

	var (
		summary string
		cards   []dto.Card
	)
	p.stage(ctx, "parse", func(ctx context.Context, span trace.Span) error {
		summary, cards = p.parser.Parse(fullText)
		span.SetAttributes(attribute.Int("rag.cards", len(cards)))
		return nil
	})

	p.logger.Info(moduleName, "[DONE] Turn completed", map[string]interface{}{
		"session_id": sessionID,
		"documents":  st.FoundCount(),
		"cards":      len(cards),
	})

	return &ExecutionResult{
		Summary:       summary,
		Cards:         cards,
		FullText:      fullText,
		Intent:        st.Intent,
		DocumentCount: st.FoundCount(),
	}, nil
}

// stage wraps fn in a span and a duration observation.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, trace.Span) error) error {
	ctx, span := p.tracer.Start(ctx, "rag."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	metrics.RagStageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error(moduleName, "Stage failed", map[string]interface{}{
			"stage": name,
			"error": err.Error(),
		})
	}
	return err
}
