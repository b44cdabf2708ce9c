package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingEmbedder struct {
	calls int
	vec   []float32
	err   error
}

func (c *countingEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.vec, nil
}

func (c *countingEmbedder) Dimensions() int { return len(c.vec) }

func TestCachedEmbedder_HitSkipsInner(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	ce := NewCachedEmbedder(inner, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := ce.Embed(ctx, "arsenal form")
	require.NoError(t, err)
	second, err := ce.Embed(ctx, "arsenal form")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second call must be served from cache")
}

func TestCachedEmbedder_DistinctTextsMiss(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{0.5}}
	ce := NewCachedEmbedder(inner, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := ce.Embed(ctx, "arsenal")
	require.NoError(t, err)
	_, err = ce.Embed(ctx, "chelsea")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedEmbedder_ErrorsAreNotCached(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("provider down")}
	ce := NewCachedEmbedder(inner, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := ce.Embed(ctx, "arsenal")
	require.Error(t, err)

	inner.err = nil
	inner.vec = []float32{1}
	_, err = ce.Embed(ctx, "arsenal")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
