package redisstore

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"kuliner-chatbot-be/pkg/store"
)

const keyPrefix = "kuliner:conversation:"

// ConversationRepository stores each session as a Redis list of JSON messages.
type ConversationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConversationRepository(client *redis.Client, ttl time.Duration) *ConversationRepository {
	return &ConversationRepository{
		client: client,
		ttl:    ttl,
	}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *ConversationRepository) Get(ctx context.Context, sessionID string) ([]store.Message, error) {
	raw, err := r.client.LRange(ctx, key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	msgs := make([]store.Message, 0, len(raw))
	for i, item := range raw {
		var m store.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("decode message %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Append pushes messages and refreshes the TTL atomically.
func (r *ConversationRepository) Append(ctx context.Context, sessionID string, messages ...store.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, len(messages))
	for i, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		values[i] = string(b)
	}

	k := key(sessionID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, values...)
		if r.ttl > 0 {
			pipe.Expire(ctx, k, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	return nil
}

func (r *ConversationRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, key(sessionID)).Err()
}
