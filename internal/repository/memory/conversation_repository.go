package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"kuliner-chatbot-be/pkg/store"
)

// ConversationRepository keeps session histories in process memory.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository(ttl time.Duration) *ConversationRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Get(_ context.Context, sessionID string) ([]store.Message, error) {
	if x, found := r.cache.Get(sessionID); found {
		msgs := x.([]store.Message)
		out := make([]store.Message, len(msgs))
		copy(out, msgs)
		return out, nil
	}
	return []store.Message{}, nil
}

// Append stores a new slice each time so readers never see a partial write.
// Each append refreshes the session expiry.
func (r *ConversationRepository) Append(_ context.Context, sessionID string, messages ...store.Message) error {
	var existing []store.Message
	if x, found := r.cache.Get(sessionID); found {
		existing = x.([]store.Message)
	}
	next := make([]store.Message, 0, len(existing)+len(messages))
	next = append(next, existing...)
	next = append(next, messages...)
	r.cache.Set(sessionID, next, cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
