package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func TestProfiler_GetProfileCreatesDefault(t *testing.T) {
	mr, rdb := newTestRedis(t)
	p := NewProfiler(rdb, map[string]ModelCost{"gpt-4o-mini": {Input: 0.001, Output: 0.002}})
	ctx := context.Background()

	profile, err := p.GetProfile(ctx, "gpt-4o-mini")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", profile.ModelID)
	assert.EqualValues(t, defaultLatencyMS, profile.AvgLatencyMS)
	assert.Equal(t, statusOnline, profile.Status)
	assert.Equal(t, 0.001, profile.CostPerInputToken)
	assert.Equal(t, "2000", mr.HGet("profile:gpt-4o-mini", "avg_latency_ms"))
}

func TestProfiler_RecordSuccessAndFailure(t *testing.T) {
	mr, rdb := newTestRedis(t)
	p := NewProfiler(rdb, map[string]ModelCost{"gpt-4o-mini": {Input: 0.001, Output: 0.002}})
	p.now = fixedClock
	ctx := context.Background()

	_, err := p.GetProfile(ctx, "gpt-4o-mini")
	require.NoError(t, err)

	p.RecordSuccess(ctx, "gpt-4o-mini", time.Second, Usage{PromptTokens: 1000, CompletionTokens: 500, TotalTokens: 1500})

	profile, err := p.GetProfile(ctx, "gpt-4o-mini")
	require.NoError(t, err)
	assert.EqualValues(t, 1900, profile.AvgLatencyMS, "EWMA of 1000ms over a 2000ms default")
	assert.EqualValues(t, 1, profile.TotalSuccesses)
	assert.EqualValues(t, 1000, profile.TotalInputTokens)
	assert.EqualValues(t, 500, profile.TotalOutputTokens)
	assert.InDelta(t, 2.0, profile.CostSpentMonthly, 1e-9)
	assert.Zero(t, profile.ErrorRate)
	assert.True(t, mr.Exists("cost:gpt-4o-mini:2026-03"))

	p.RecordFailure(ctx, "gpt-4o-mini")

	profile, err = p.GetProfile(ctx, "gpt-4o-mini")
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.TotalFailures)
	assert.InDelta(t, 0.5, profile.ErrorRate, 1e-9)
	assert.Equal(t, statusDegraded, profile.Status)
	assert.EqualValues(t, 2, profile.TotalRequests())
}

func TestProfiler_RecordWithoutExistingProfile(t *testing.T) {
	_, rdb := newTestRedis(t)
	p := NewProfiler(rdb, nil)
	ctx := context.Background()

	p.RecordSuccess(ctx, "claude-3-5-haiku-latest", 300*time.Millisecond, Usage{})

	profile, err := p.GetProfile(ctx, "claude-3-5-haiku-latest")
	require.NoError(t, err)
	assert.EqualValues(t, 300, profile.AvgLatencyMS)
	assert.EqualValues(t, 1, profile.TotalSuccesses)
	assert.Zero(t, profile.CostPerInputToken)
}

func TestProfiler_NilIsNoOp(t *testing.T) {
	var p *Profiler
	ctx := context.Background()

	assert.NotPanics(t, func() {
		p.RecordSuccess(ctx, "gpt-4o", time.Second, Usage{TotalTokens: 1})
		p.RecordFailure(ctx, "gpt-4o")
	})

	profile, err := p.GetProfile(ctx, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, statusOnline, profile.Status)
	assert.Equal(t, ModelCost{}, p.Cost("gpt-4o"))
}

func TestProfiler_RedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	p := NewProfiler(rdb, nil)
	mr.Close()

	_, err := p.GetProfile(context.Background(), "gpt-4o")
	assert.Error(t, err)
	assert.NotPanics(t, func() { p.RecordFailure(context.Background(), "gpt-4o") })
}

func TestProfiler_WithoutRedis(t *testing.T) {
	p := NewProfiler(nil, map[string]ModelCost{"gpt-4o-mini": {Input: 0.001, Output: 0.002}})
	ctx := context.Background()

	p.RecordSuccess(ctx, "gpt-4o-mini", 100*time.Millisecond, Usage{PromptTokens: 1, CompletionTokens: 1})
	p.RecordFailure(ctx, "gpt-4o-mini")

	profile, err := p.GetProfile(ctx, "gpt-4o-mini")
	require.NoError(t, err)
	assert.EqualValues(t, defaultLatencyMS, profile.AvgLatencyMS)
	assert.Zero(t, profile.TotalRequests())
	assert.Equal(t, 0.001, profile.CostPerInputToken, "costs still apply without redis")
}

func TestProfiler_GetProfileReadsSpendForNewProfile(t *testing.T) {
	mr, rdb := newTestRedis(t)
	p := NewProfiler(rdb, nil)
	p.now = fixedClock
	require.NoError(t, mr.Set("cost:gpt-4o-mini:2026-03", "12.5"))

	profile, err := p.GetProfile(context.Background(), "gpt-4o-mini")
	require.NoError(t, err)
	assert.True(t, mr.Exists("profile:gpt-4o-mini"))
	assert.Equal(t, 12.5, profile.CostSpentMonthly)
}
