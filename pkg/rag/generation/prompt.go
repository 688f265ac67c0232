package generation

import (
	"strconv"
	"strings"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/pkg/rag/state"
	"kuliner-chatbot-be/pkg/store"
)

// PromptRenderer fills the recommendation template for one turn.
type PromptRenderer struct {
	template string
}

func NewPromptRenderer() *PromptRenderer {
	return &PromptRenderer{template: constant.RecommendationPromptV1}
}

func (p *PromptRenderer) Render(st *state.PipelineState) string {
	r := strings.NewReplacer(
		"{current_time}", st.CurrentTime,
		"{time_category}", st.Intent.MealCategory,
		"{num_recs}", strconv.Itoa(st.Intent.Count),
		"{len_specific_docs}", strconv.Itoa(st.FoundCount()),
		"{context}", st.ContextText,
		"{chat_history}", renderHistory(st.History),
		"{question}", st.Query,
	)
	return r.Replace(p.template)
}

// renderHistory writes prior turns as a transcript. Stored assistant turns
// go in verbatim, card block included, so the model sees which venues it
// already recommended.
func renderHistory(history []store.Message) string {
	if len(history) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Riwayat percakapan:\n")
	for _, m := range history {
		switch m.Role {
		case store.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("Human: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
