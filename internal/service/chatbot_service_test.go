package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/events"
	"kuliner-chatbot-be/pkg/rag/executor"
	"kuliner-chatbot-be/pkg/rag/intent"
)

func servedResult() *executor.ExecutionResult {
	return &executor.ExecutionResult{
		Summary:       "Intro\n1. Warung A",
		Cards:         []dto.Card{{NamaTempat: "Warung A"}},
		Intent:        intent.QueryIntent{Count: 2, MealCategory: "sarapan", City: "Samarinda"},
		DocumentCount: 2,
	}
}

func TestChatbotService_Chat(t *testing.T) {
	t.Run("mints a session id when absent", func(t *testing.T) {
		pipeline := &fakePipeline{result: servedResult()}
		svc := NewChatbotService(pipeline, nil, logger.NewNopLogger())

		res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "2 tempat sarapan"})

		require.NoError(t, err)
		_, parseErr := uuid.Parse(res.SessionId)
		assert.NoError(t, parseErr)
		assert.Equal(t, res.SessionId, pipeline.sessionID)
		assert.Equal(t, "2 tempat sarapan", pipeline.query)
		assert.Equal(t, "Intro\n1. Warung A", res.Answer)
		assert.Len(t, res.Cards, 1)
	})

	t.Run("keeps the caller session id", func(t *testing.T) {
		pipeline := &fakePipeline{result: servedResult()}
		svc := NewChatbotService(pipeline, nil, logger.NewNopLogger())

		res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "lagi", SessionId: "abc"})

		require.NoError(t, err)
		assert.Equal(t, "abc", res.SessionId)
		assert.Equal(t, "abc", pipeline.sessionID)
	})

	t.Run("propagates pipeline errors", func(t *testing.T) {
		pipeline := &fakePipeline{err: executor.ErrGeneration}
		svc := NewChatbotService(pipeline, nil, logger.NewNopLogger())

		res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "q", SessionId: "s"})

		assert.Nil(t, res)
		assert.ErrorIs(t, err, executor.ErrGeneration)
	})
}

func TestChatbotService_PublishesServedEvent(t *testing.T) {
	publisher := &fakeEventPublisher{}
	svc := NewChatbotService(&fakePipeline{result: servedResult()}, publisher, logger.NewNopLogger())

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "q", SessionId: "s1"})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	ev := publisher.events[0]
	assert.Equal(t, events.TypeRecommendationServed, ev.EventType())
	assert.Equal(t, "s1", ev.Payload()["session_id"])
	assert.Equal(t, "sarapan", ev.Payload()["meal_category"])
	assert.Equal(t, 1, ev.Payload()["cards"])
}

func TestChatbotService_PublishFailureDoesNotFailTurn(t *testing.T) {
	publisher := &fakeEventPublisher{err: errors.New("nats down")}
	svc := NewChatbotService(&fakePipeline{result: servedResult()}, publisher, logger.NewNopLogger())

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "q", SessionId: "s1"})

	require.NoError(t, err)
	assert.Equal(t, "s1", res.SessionId)
}
