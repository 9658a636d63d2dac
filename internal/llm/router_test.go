package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

func testRouterConfig() *RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.Models = map[string]ModelMetadata{
		"premium": {QualityScore: 9},
		"budget":  {QualityScore: 6},
	}
	return cfg
}

func TestPreferenceFor(t *testing.T) {
	assert.Equal(t, PreferenceCost, PreferenceFor(analyzer.ComplexitySimple))
	assert.Equal(t, PreferenceBalanced, PreferenceFor(analyzer.ComplexityModerate))
	assert.Equal(t, PreferenceMaxQuality, PreferenceFor(analyzer.ComplexityComplex))
}

func TestRouter_WithoutProfilerPrefersQuality(t *testing.T) {
	r := NewRouter(nil, testRouterConfig())

	for _, pref := range []string{PreferenceCost, PreferenceBalanced, PreferenceMaxQuality} {
		got, err := r.SelectModel(context.Background(), []string{"budget", "premium"}, pref, 100, nil)
		require.NoError(t, err)
		assert.Equal(t, "premium", got, pref)
	}
}

func TestRouter_PreferenceTradesCostForQuality(t *testing.T) {
	_, rdb := newTestRedis(t)
	p := NewProfiler(rdb, map[string]ModelCost{
		"premium": {Input: 0.00001, Output: 0.00003},
		"budget":  {Input: 0.0000001, Output: 0.0000002},
	})
	r := NewRouter(p, testRouterConfig())
	ctx := context.Background()
	candidates := []string{"premium", "budget"}

	cheap, err := r.SelectModel(ctx, candidates, PreferenceCost, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, "budget", cheap)

	best, err := r.SelectModel(ctx, candidates, PreferenceMaxQuality, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, "premium", best)
}

func TestRouter_PreChecks(t *testing.T) {
	mr, rdb := newTestRedis(t)
	p := NewProfiler(rdb, nil)
	p.now = fixedClock
	r := NewRouter(p, testRouterConfig())
	ctx := context.Background()
	candidates := []string{"premium", "budget"}

	t.Run("over budget", func(t *testing.T) {
		require.NoError(t, mr.Set("cost:premium:2026-03", "12.5"))
		got, err := r.SelectModel(ctx, candidates, PreferenceMaxQuality, 100, map[string]float64{"premium": 10})
		require.NoError(t, err)
		assert.Equal(t, "budget", got)

		got, err = r.SelectModel(ctx, candidates, PreferenceMaxQuality, 100, map[string]float64{"premium": 20})
		require.NoError(t, err)
		assert.Equal(t, "premium", got)
		mr.Del("cost:premium:2026-03")
	})

	t.Run("error rate ignored below min requests", func(t *testing.T) {
		mr.HSet("profile:premium", "total_successes", "1", "total_failures", "4", "error_rate", "0.8")
		got, err := r.SelectModel(ctx, []string{"premium"}, PreferenceMaxQuality, 100, nil)
		require.NoError(t, err)
		assert.Equal(t, "premium", got)
	})

	t.Run("high error rate filtered", func(t *testing.T) {
		mr.HSet("profile:premium", "total_successes", "5", "total_failures", "20", "error_rate", "0.8")
		_, err := r.SelectModel(ctx, []string{"premium"}, PreferenceMaxQuality, 100, nil)
		assert.ErrorIs(t, err, ErrNoModelAvailable)

		got, err := r.SelectModel(ctx, candidates, PreferenceMaxQuality, 100, nil)
		require.NoError(t, err)
		assert.Equal(t, "budget", got)
	})
}

func TestRouter_NoModelAvailable(t *testing.T) {
	r := NewRouter(nil, testRouterConfig())

	_, err := r.SelectModel(context.Background(), []string{"unknown"}, PreferenceCost, 10, nil)
	assert.ErrorIs(t, err, ErrNoModelAvailable)

	_, err = r.SelectModel(context.Background(), nil, PreferenceCost, 10, nil)
	assert.ErrorIs(t, err, ErrNoModelAvailable)
}

func TestRouter_UnknownPreferenceFallsBackToDefault(t *testing.T) {
	r := NewRouter(nil, testRouterConfig())
	got, err := r.SelectModel(context.Background(), []string{"budget", "premium"}, "nonsense", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "premium", got)

	cfg := testRouterConfig()
	delete(cfg.Strategies, PreferenceDefault)
	_, err = NewRouter(nil, cfg).SelectModel(context.Background(), []string{"budget", "premium"}, "nonsense", 10, nil)
	assert.Error(t, err)
}

func TestCalculateNormalizedScore_ReliabilityMultiplies(t *testing.T) {
	s := RoutingStrategy{QualityWeight: 1}
	healthy := contender{Profile: &ModelProfile{}, Metadata: ModelMetadata{QualityScore: 8}}
	flaky := contender{Profile: &ModelProfile{ErrorRate: 0.5}, Metadata: ModelMetadata{QualityScore: 8}}

	assert.InDelta(t, 0.8, calculateNormalizedScore(healthy, s, 0, 0, 0, 0), 1e-9)
	assert.InDelta(t, 0.4, calculateNormalizedScore(flaky, s, 0, 0, 0, 0), 1e-9)
}

func TestRouter_Routable(t *testing.T) {
	r := NewRouter(nil, testRouterConfig())
	assert.True(t, r.Routable("premium"))
	assert.False(t, r.Routable("unlisted-model"))

	assert.True(t, NewRouter(nil, nil).Routable("gpt-4o-mini"), "defaults cover the stock models")
}
