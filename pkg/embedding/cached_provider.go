package embedding

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes embeddings per (taskType, text). Repeated chat
// queries skip the embedding backend while the entry is fresh.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := taskType + "\x00" + text
	if x, found := c.cache.Get(key); found {
		return x.(*EmbeddingResponse), nil
	}

	res, err := c.inner.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, res, cache.DefaultExpiration)
	return res, nil
}
