package generation

import (
	"context"
	"fmt"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/llm"
	"kuliner-chatbot-be/pkg/rag/state"
)

const moduleName = "Generation"

type Generator struct {
	provider  llm.LLMProvider
	renderer  *PromptRenderer
	logger    logger.ILogger
	llmLogger logger.ILogger // prompt/completion trail
}

func NewGenerator(provider llm.LLMProvider, renderer *PromptRenderer, log logger.ILogger, llmLog logger.ILogger) *Generator {
	return &Generator{
		provider:  provider,
		renderer:  renderer,
		logger:    log,
		llmLogger: llmLog,
	}
}

// Generate returns the model prose followed by the card block. With no
// documents it returns the apology and never calls the model.
func (g *Generator) Generate(ctx context.Context, st *state.PipelineState) (string, error) {
	if st.FoundCount() == 0 {
		g.logger.Info(moduleName, "No grounding documents, returning apology", map[string]interface{}{
			"session_id": st.SessionID,
			"city":       st.Intent.City,
			"category":   st.Intent.MealCategory,
		})
		return constant.NoGroundingApology, nil
	}

	prompt := g.renderer.Render(st)
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt},
		{Role: llm.RoleUser, Content: st.Query},
	}

	g.llmLogger.Debug(moduleName, "Prompt", map[string]interface{}{
		"session_id": st.SessionID,
		"prompt":     prompt,
		"query":      st.Query,
	})

	prose, err := g.provider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	g.llmLogger.Debug(moduleName, "Completion", map[string]interface{}{
		"session_id": st.SessionID,
		"completion": prose,
	})

	block, err := EncodeCards(st.Documents)
	if err != nil {
		return "", fmt.Errorf("encode cards: %w", err)
	}

	return prose + "\n\n" + constant.CardsDelimiter + block, nil
}
