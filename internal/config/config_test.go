package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAG_CITIES", "")
	t.Setenv("CONVERSATION_STORE", "memory")

	cfg := Load()

	assert.Equal(t, 8, cfg.App.TimezoneOffset)
	assert.Equal(t, []string{"samarinda", "jakarta"}, cfg.Rag.Cities)
	assert.Equal(t, "Samarinda", cfg.Rag.DefaultCity)
	assert.Equal(t, 4000, cfg.Rag.ContextCharLimit)
	assert.Equal(t, "memory", cfg.Conversation.Store)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RAG_CITIES", " balikpapan, ,samarinda ")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	t.Setenv("CONVERSATION_TTL_MINUTES", "5")

	cfg := Load()

	assert.Equal(t, []string{"balikpapan", "samarinda"}, cfg.Rag.Cities)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 1e-9)
	assert.Equal(t, 2048, cfg.Ai.MaxTokens)
	assert.Equal(t, 5*time.Minute, cfg.Conversation.TTL)
}

func TestLoadTracing(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4318")

	cfg := Load()

	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "jaeger:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "kuliner-chatbot-be", cfg.Tracing.ServiceName)
}
