package factory

import (
	"fmt"

	"kuliner-chatbot-be/pkg/llm"
	"kuliner-chatbot-be/pkg/llm/huggingface"
	"kuliner-chatbot-be/pkg/llm/ollama"
)

// Settings selects and configures the generation backend.
type Settings struct {
	Provider       string // "ollama" | "huggingface"
	Model          string
	BaseURL        string
	APIKey         string
	Temperature    float64
	MaxTokens      int
	BreakerEnabled bool
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	defaults := []llm.Option{
		llm.WithTemperature(s.Temperature),
		llm.WithMaxTokens(s.MaxTokens),
	}

	var provider llm.LLMProvider
	switch s.Provider {
	case "ollama":
		provider = ollama.NewProvider(s.BaseURL, s.Model, defaults...)
	case "huggingface":
		provider = huggingface.NewHuggingFaceProvider(s.APIKey, s.BaseURL, s.Model, defaults...)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}

	if s.BreakerEnabled {
		provider = llm.NewBreakerProvider(provider, llm.DefaultBreakerSettings(s.Provider))
	}
	return provider, nil
}
