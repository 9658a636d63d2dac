package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

func TestRewriteCache_RoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := NewRewriteCache(rdb, 0)
	ctx := context.Background()

	_, ok := c.Get(ctx, "Write a poem")
	assert.False(t, ok)

	want := &analyzer.Enrichment{OptimizedPrompt: "Write a sonnet about rain.", Suggestions: []string{"Name a tone."}}
	c.Set(ctx, "Write a poem", want)

	got, ok := c.Get(ctx, "Write a poem")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, rewriteCacheTTL, mr.TTL(rewriteCacheKey("Write a poem")))

	_, ok = c.Get(ctx, "Write a poem!")
	assert.False(t, ok)
}

func TestRewriteCache_SkipsEmptyAndCorrupt(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := NewRewriteCache(rdb, time.Hour)
	ctx := context.Background()

	c.Set(ctx, "a", &analyzer.Enrichment{})
	c.Set(ctx, "b", nil)
	assert.Empty(t, mr.Keys())

	require.NoError(t, mr.Set(rewriteCacheKey("c"), "{not json"))
	_, ok := c.Get(ctx, "c")
	assert.False(t, ok)
}

func TestRewriteCache_NilAndUnavailable(t *testing.T) {
	var nilCache *RewriteCache
	_, ok := nilCache.Get(context.Background(), "x")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		nilCache.Set(context.Background(), "x", &analyzer.Enrichment{OptimizedPrompt: "y"})
	})

	mr, rdb := newTestRedis(t)
	c := NewRewriteCache(rdb, 0)
	mr.Close()

	_, ok = c.Get(context.Background(), "x")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		c.Set(context.Background(), "x", &analyzer.Enrichment{OptimizedPrompt: "y"})
	})
}

func TestNewRewriteCache_WithoutRedis(t *testing.T) {
	c := NewRewriteCache(nil, time.Hour)
	assert.Nil(t, c)

	c.Set(context.Background(), "Write a poem", &analyzer.Enrichment{OptimizedPrompt: "x"})
	_, ok := c.Get(context.Background(), "Write a poem")
	assert.False(t, ok)
}
