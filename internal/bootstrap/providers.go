package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/repository/memory"
	"kuliner-chatbot-be/internal/repository/redisstore"
	"kuliner-chatbot-be/internal/service"
	"kuliner-chatbot-be/pkg/embedding"
	"kuliner-chatbot-be/pkg/embedding/jina"
	pktNats "kuliner-chatbot-be/pkg/nats"
	"kuliner-chatbot-be/pkg/rag/state"
)

// NewEmbeddingProvider picks the backend named by EMBEDDING_PROVIDER.
func NewEmbeddingProvider(cfg *config.Config, log logger.ILogger) embedding.EmbeddingProvider {
	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}
	log.Info("Bootstrap", "Using embedding provider", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
	})
	return provider
}

// NewConversationStore returns the configured store and a close func.
func NewConversationStore(cfg *config.Config, log logger.ILogger) (state.ConversationStore, func(), error) {
	switch cfg.Conversation.Store {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return redisstore.NewConversationRepository(rdb, cfg.Conversation.TTL), func() { _ = rdb.Close() }, nil
	case "memory", "":
		return memory.NewConversationRepository(cfg.Conversation.TTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported conversation store: %s", cfg.Conversation.Store)
	}
}

// NewEventPublisher connects to NATS when configured. A nil publisher
// disables events; the service keeps working without the bus.
func NewEventPublisher(cfg *config.Config, log logger.ILogger) (*pktNats.Publisher, service.EventPublisher) {
	if cfg.App.NatsURL == "" {
		return nil, nil
	}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, log)
	if err != nil {
		log.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}
	return natsPub, natsPub
}
