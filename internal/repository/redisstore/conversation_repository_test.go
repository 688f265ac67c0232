package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/pkg/store"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConversationRepository_RoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewConversationRepository(client, 30*time.Minute)
	ctx := context.Background()

	msgs, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, repo.Append(ctx, "s1",
		store.Message{Role: store.RoleHuman, Content: "cari bakso"},
		store.Message{Role: store.RoleAssistant, Content: "ini dia\n\n###CARDS###\n[]"},
	))

	msgs, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, store.RoleHuman, msgs[0].Role)
	assert.Equal(t, "ini dia\n\n###CARDS###\n[]", msgs[1].Content)

	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+"s1"))
}

func TestConversationRepository_TTLExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewConversationRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", store.Message{Role: store.RoleHuman, Content: "halo"}))
	mr.FastForward(2 * time.Minute)

	msgs, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestConversationRepository_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewConversationRepository(client, time.Minute)

	_, err := mr.Lpush(keyPrefix+"s1", "not json")
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), "s1")
	assert.Error(t, err)
}

func TestConversationRepository_Unavailable(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewConversationRepository(client, time.Minute)
	mr.Close()

	err := repo.Append(context.Background(), "s1", store.Message{Role: store.RoleHuman, Content: "halo"})
	assert.Error(t, err)
}
