package state

import (
	"context"

	"kuliner-chatbot-be/pkg/rag/intent"
	"kuliner-chatbot-be/pkg/store"
)

// PipelineState carries one turn through retrieval and generation.
type PipelineState struct {
	SessionID   string
	History     []store.Message // prior turns, oldest first, excluding Query
	Query       string
	CurrentTime string // "HH:MM" local time
	Intent      intent.QueryIntent
	ContextText string
	Documents   []store.Document
}

// FoundCount is how many documents actually back this turn.
func (s *PipelineState) FoundCount() int {
	return len(s.Documents)
}

// ConversationStore keeps the append-only message log of each session.
// Get on an unknown session returns an empty history, not an error.
type ConversationStore interface {
	Get(ctx context.Context, sessionID string) ([]store.Message, error)
	Append(ctx context.Context, sessionID string, messages ...store.Message) error
}
