package bootstrap

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/controller"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/repository/implementation"
	"kuliner-chatbot-be/internal/service"
	"kuliner-chatbot-be/pkg/embedding"
	"kuliner-chatbot-be/pkg/llm/factory"
	"kuliner-chatbot-be/pkg/rag/executor"
	"kuliner-chatbot-be/pkg/rag/generation"
	"kuliner-chatbot-be/pkg/rag/intent"
	"kuliner-chatbot-be/pkg/rag/response"
	"kuliner-chatbot-be/pkg/rag/retrieval"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	ChatbotController controller.IChatbotController
	PostController    controller.IPostController
	HealthController  controller.IHealthController

	closers []func()
}

// NewContainer builds everything the HTTP server needs.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Collaborators
	embeddingProvider := embedding.NewCachedProvider(
		NewEmbeddingProvider(cfg, sysLogger),
		cfg.Ai.EmbeddingCacheTTL,
	)

	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider:       cfg.Ai.LLMProvider,
		Model:          cfg.Ai.LLMModel,
		BaseURL:        llmBaseURL(cfg),
		APIKey:         cfg.Keys.HuggingFace,
		Temperature:    cfg.Ai.Temperature,
		MaxTokens:      cfg.Ai.MaxTokens,
		BreakerEnabled: cfg.Ai.BreakerEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	conversations, closeStore, err := NewConversationStore(cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)

	natsPub, eventPublisher := NewEventPublisher(cfg, sysLogger)
	if natsPub != nil {
		c.closers = append(c.closers, natsPub.Close)
	}

	// 2. RAG pipeline
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	vectorStore := service.NewVenueVectorStore(embeddingProvider, implementation.NewVenueEmbeddingRepository(db))

	pipeline := executor.NewPipeline(
		intent.NewExtractor(cfg.Rag.Cities, cfg.Rag.DefaultCity),
		retrieval.NewRetriever(vectorStore, sysLogger, cfg.Rag.ContextCharLimit),
		generation.NewGenerator(llmProvider, generation.NewPromptRenderer(), sysLogger, llmLogger),
		response.NewParser(sysLogger),
		conversations,
		sysLogger,
		executor.WithTimezoneOffset(cfg.App.TimezoneOffset),
	)

	// 3. Services
	chatbotService := service.NewChatbotService(pipeline, eventPublisher, sysLogger)
	postService := service.NewPostService(cfg.App.CatalogCSVPath, sysLogger)

	// 4. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, sysLogger)
	c.PostController = controller.NewPostController(postService)
	c.HealthController = controller.NewHealthController()

	return c, nil
}

// Close releases external connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

type IngestContainer struct {
	Logger          logger.ILogger
	ConsumerService service.IConsumerService
	IngestService   service.IIngestService

	closers []func()
}

// NewIngestContainer wires the offline ingestion path: an in-process
// watermill channel between the batch publisher and the embedding consumer.
func NewIngestContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *IngestContainer {
	c := &IngestContainer{Logger: sysLogger}

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	repo := implementation.NewVenueEmbeddingRepository(db)
	embeddingProvider := NewEmbeddingProvider(cfg, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		repo,
		embeddingProvider,
		sysLogger,
	)

	natsPub, eventPublisher := NewEventPublisher(cfg, sysLogger)
	if natsPub != nil {
		c.closers = append(c.closers, natsPub.Close)
	}

	c.ConsumerService = consumerService
	c.IngestService = service.NewIngestService(
		service.NewPublisherService(pubSub, cfg.App.IngestTopic),
		consumerService.Results(),
		repo,
		eventPublisher,
		sysLogger,
	)
	return c
}

func (c *IngestContainer) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return ""
}
