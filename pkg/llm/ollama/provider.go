package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kuliner-chatbot-be/pkg/llm"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	// DefaultTimeout bounds a whole non-streaming generation.
	DefaultTimeout = 120 * time.Second
)

// Provider runs non-streaming chat completions against a local Ollama
// server. Sampling settings travel in the request's "options" object.
type Provider struct {
	baseURL  string
	model    string
	client   *http.Client
	defaults []llm.Option
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(baseURL, model string, defaults ...llm.Option) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		client:   &http.Client{Timeout: DefaultTimeout},
		defaults: defaults,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// sampling maps onto Ollama's model options. Temperature is always sent so
// an explicit 0 is not mistaken for "use the model default".
type sampling struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  sampling      `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error,omitempty"`
}

func (p *Provider) resolve(options []llm.Option) *llm.Options {
	opts := &llm.Options{Model: p.model}
	for _, o := range p.defaults {
		o(opts)
	}
	for _, o := range options {
		o(opts)
	}
	return opts
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := p.resolve(options)

	messages := make([]chatMessage, len(history))
	for i, m := range history {
		role := m.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages[i] = chatMessage{Role: role, Content: m.Content}
	}

	var resp chatResponse
	err := p.post(ctx, "/api/chat", chatRequest{
		Model:    opts.Model,
		Messages: messages,
		Options: sampling{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama: %s", resp.Error)
	}
	return resp.Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (p *Provider) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ollama: decode response: %w", err)
	}
	return nil
}
