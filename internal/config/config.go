package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Keys         APIKeys
	Ai           AIConfig
	Rag          RagConfig
	Conversation ConversationConfig
	Tracing      TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	TimezoneOffset     int // hours east of UTC; WITA = 8
	CatalogCSVPath     string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" | "gemini" | "jina"
	OllamaBaseURL     string
	OllamaModel       string // embedding model
	LLMProvider       string // "ollama" | "huggingface"
	LLMModel          string
	LLMBaseURL        string
	Temperature       float64
	MaxTokens         int
	BreakerEnabled    bool
	EmbeddingCacheTTL time.Duration
}

type RagConfig struct {
	Cities           []string
	DefaultCity      string
	ContextCharLimit int
}

type ConversationConfig struct {
	Store string // "memory" | "redis"
	TTL   time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string // OTLP/HTTP host:port
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm_rag.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			TimezoneOffset:     getEnvAsInt("TZ_OFFSET_HOURS", 8),
			CatalogCSVPath:     getEnv("CATALOG_CSV_PATH", "data/cleaned_enhanced_data_2.csv"),
			IngestTopic:        getEnv("EMBED_VENUE_TOPIC_NAME", "EMBED_VENUE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3.1:8b"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 2048),
			BreakerEnabled:    getEnv("LLM_BREAKER_ENABLED", "true") == "true",
			EmbeddingCacheTTL: time.Duration(getEnvAsInt("EMBEDDING_CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		Rag: RagConfig{
			Cities:           getEnvAsList("RAG_CITIES", []string{"samarinda", "jakarta"}),
			DefaultCity:      getEnv("RAG_DEFAULT_CITY", "Samarinda"),
			ContextCharLimit: getEnvAsInt("RAG_CONTEXT_CHAR_LIMIT", 4000),
		},
		Conversation: ConversationConfig{
			Store: getEnv("CONVERSATION_STORE", "memory"),
			TTL:   time.Duration(getEnvAsInt("CONVERSATION_TTL_MINUTES", 60)) * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "kuliner-chatbot-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
