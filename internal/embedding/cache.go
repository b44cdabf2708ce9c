package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"pitchside/internal/retrieval"
)

// CachedEmbedder decorates an Embedder with an in-process cache keyed by the
// hash of the input text. Identical queries resolve to identical vectors
// without another provider round trip, which also keeps retrieval
// reproducible while an entry lives.
type CachedEmbedder struct {
	inner  retrieval.Embedder
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewCachedEmbedder(inner retrieval.Embedder, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if cached, ok := c.cache.Get(key); ok {
		if vec, ok := cached.([]float32); ok {
			return vec, nil
		}
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}

func (c *CachedEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
