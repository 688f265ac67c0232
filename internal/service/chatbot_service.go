package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/events"
	"kuliner-chatbot-be/pkg/rag/executor"
)

// ChatPipeline runs one conversational turn.
type ChatPipeline interface {
	Execute(ctx context.Context, sessionID, query string) (*executor.ExecutionResult, error)
}

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatbotService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatbotService struct {
	pipeline       ChatPipeline
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewChatbotService wires the chat pipeline. eventPublisher may be nil.
func NewChatbotService(pipeline ChatPipeline, eventPublisher EventPublisher, log logger.ILogger) IChatbotService {
	return &chatbotService{
		pipeline:       pipeline,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *chatbotService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := request.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res, err := s.pipeline.Execute(ctx, sessionID, request.Query)
	if err != nil {
		return nil, fmt.Errorf("chat turn for session %s: %w", sessionID, err)
	}

	s.publishServed(ctx, sessionID, res)

	return &dto.ChatResponse{
		Answer:    res.Summary,
		Cards:     res.Cards,
		SessionId: sessionID,
	}, nil
}

func (s *chatbotService) publishServed(ctx context.Context, sessionID string, res *executor.ExecutionResult) {
	if s.eventPublisher == nil {
		return
	}
	event := events.RecommendationServed(
		sessionID,
		res.Intent.City,
		res.Intent.MealCategory,
		res.Intent.Count,
		res.DocumentCount,
		len(res.Cards),
	)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Chatbot", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
