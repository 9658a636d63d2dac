// In file: internal/llm/router.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

// =================================================================================
// Configuration Structs
// =================================================================================

// Routing preferences, keyed into RouterConfig.Strategies.
const (
	PreferenceCost       = "cost"
	PreferenceBalanced   = "balanced"
	PreferenceMaxQuality = "max_quality"
	PreferenceDefault    = "default"
)

// RoutingStrategy defines the weights for scoring models based on a preference.
type RoutingStrategy struct {
	QualityWeight float64 `yaml:"quality_weight"`
	CostWeight    float64 `yaml:"cost_weight"`
	LatencyWeight float64 `yaml:"latency_weight"`
}

// ModelMetadata holds static, configured information about a model.
type ModelMetadata struct {
	QualityScore float64 `yaml:"quality_score"`
}

// Thresholds are the pre-check limits a model must pass to be considered.
type Thresholds struct {
	MaxErrorRate    float64 `yaml:"max_error_rate"`
	MinRequestCount int64   `yaml:"min_request_count"`
}

// RouterConfig holds the complete configuration for the router.
type RouterConfig struct {
	Thresholds Thresholds                 `yaml:"pre_check_thresholds"`
	Models     map[string]ModelMetadata   `yaml:"models"`
	Strategies map[string]RoutingStrategy `yaml:"strategies"`
}

// DefaultRouterConfig is used when no config file is present.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Thresholds: Thresholds{MaxErrorRate: 0.25, MinRequestCount: 10},
		Models: map[string]ModelMetadata{
			"gpt-4o-mini":             {QualityScore: 7.5},
			"gpt-4o":                  {QualityScore: 9},
			"claude-3-5-haiku-latest": {QualityScore: 7.5},
			"claude-sonnet-4-0":       {QualityScore: 9.5},
			"gemini-1.5-flash":        {QualityScore: 7},
			"mistral-small-latest":    {QualityScore: 6.5},
		},
		Strategies: map[string]RoutingStrategy{
			PreferenceCost:       {QualityWeight: 0.2, CostWeight: 0.6, LatencyWeight: 0.2},
			PreferenceBalanced:   {QualityWeight: 0.4, CostWeight: 0.3, LatencyWeight: 0.3},
			PreferenceMaxQuality: {QualityWeight: 0.8, CostWeight: 0.1, LatencyWeight: 0.1},
			PreferenceDefault:    {QualityWeight: 0.5, CostWeight: 0.25, LatencyWeight: 0.25},
		},
	}
}

// PreferenceFor maps a prompt's complexity to a routing preference: simple
// prompts go to cheap models, complex ones to the strongest.
func PreferenceFor(c analyzer.Complexity) string {
	switch c {
	case analyzer.ComplexitySimple:
		return PreferenceCost
	case analyzer.ComplexityComplex:
		return PreferenceMaxQuality
	default:
		return PreferenceBalanced
	}
}

// =================================================================================
// Router Service
// =================================================================================

// Router selects the rewrite model for a request.
type Router struct {
	profiler *Profiler
	config   *RouterConfig
}

// NewRouter creates a router. profiler may be nil, in which case every model
// is scored from its default profile.
func NewRouter(profiler *Profiler, config *RouterConfig) *Router {
	if config == nil {
		config = DefaultRouterConfig()
	}
	return &Router{profiler: profiler, config: config}
}

// Routable reports whether modelID has metadata in the router config. Models
// without it are never selected.
func (r *Router) Routable(modelID string) bool {
	_, ok := r.config.Models[modelID]
	return ok
}

// contender holds the profile and metadata for a model that has passed pre-checks.
type contender struct {
	Profile       *ModelProfile
	Metadata      ModelMetadata
	EstimatedCost float64
}

// SelectModel filters candidates through the pre-checks, then normalizes and
// scores the remaining contenders under the preference's strategy.
func (r *Router) SelectModel(ctx context.Context, candidates []string, preference string, promptTokens int, budgets map[string]float64) (string, error) {
	log.Debugf("--- Starting Model Selection (Preference: '%s') ---", preference)

	// --- Pass 1: Filter models and create a pool of contenders ---
	contenders := make(map[string]contender)
	for _, modelID := range candidates {
		profile, err := r.profiler.GetProfile(ctx, modelID)
		if err != nil {
			log.Warnf("Could not get profile for model %s, skipping: %v", modelID, err)
			continue
		}

		if ok, reason := r.passesPreChecks(profile, budgets[modelID]); !ok {
			log.Debugf("- Filtering Model: %s | Reason: %s", modelID, reason)
			continue
		}

		meta, ok := r.config.Models[modelID]
		if !ok {
			log.Debugf("- Filtering Model: %s | Reason: Model metadata not found in config.", modelID)
			continue
		}

		// A rewrite is roughly as long as the prompt plus a few suggestions.
		estimatedOutputTokens := promptTokens * 2
		contenders[modelID] = contender{
			Profile:       profile,
			Metadata:      meta,
			EstimatedCost: float64(promptTokens)*profile.CostPerInputToken + float64(estimatedOutputTokens)*profile.CostPerOutputToken,
		}
	}

	if len(contenders) == 0 {
		return "", ErrNoModelAvailable
	}
	if len(contenders) == 1 {
		for modelID := range contenders {
			log.Debugf("🏆 Only one contender found. Selecting: %s", modelID)
			return modelID, nil
		}
	}

	// --- Pass 2: Normalize and score the contenders ---
	strategy, err := r.getStrategy(preference)
	if err != nil {
		return "", err
	}

	// Sorted so ties resolve the same way on every call.
	ids := make([]string, 0, len(contenders))
	for id := range contenders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	minCost, maxCost, minLatency, maxLatency := getNormalizationBounds(contenders)
	bestModel, bestScore := "", -1.0
	for _, modelID := range ids {
		c := contenders[modelID]
		score := calculateNormalizedScore(c, strategy, minCost, maxCost, minLatency, maxLatency)
		log.Debugf("- Scoring Model: %s | Latency: %dms | Est. Cost: %.6f | Quality: %.2f | Final Score: %.4f",
			modelID, c.Profile.AvgLatencyMS, c.EstimatedCost, c.Metadata.QualityScore, score)
		if score > bestScore {
			bestScore, bestModel = score, modelID
		}
	}

	log.Debugf("🏆 Best model selected: %s (Score: %.4f)", bestModel, bestScore)
	return bestModel, nil
}

// getStrategy retrieves the routing strategy for preference, falling back to "default".
func (r *Router) getStrategy(preference string) (RoutingStrategy, error) {
	if strategy, ok := r.config.Strategies[preference]; ok {
		return strategy, nil
	}
	log.Warnf("preference '%s' not found, falling back to 'default' strategy.", preference)
	strategy, ok := r.config.Strategies[PreferenceDefault]
	if !ok {
		return RoutingStrategy{}, errors.New("default strategy not found in configuration")
	}
	return strategy, nil
}

// calculateNormalizedScore computes a model's score using linear normalization,
// so that 1.0 is best and 0.0 worst on every factor.
func calculateNormalizedScore(c contender, strategy RoutingStrategy, minCost, maxCost, minLatency, maxLatency float64) float64 {
	latencyFactor := 0.5
	if maxLatency > minLatency {
		latencyFactor = (maxLatency - float64(c.Profile.AvgLatencyMS)) / (maxLatency - minLatency)
	}

	costFactor := 0.5
	if maxCost > minCost {
		costFactor = (maxCost - c.EstimatedCost) / (maxCost - minCost)
	}

	qualityFactor := c.Metadata.QualityScore / 10.0
	reliabilityFactor := 1.0 - c.Profile.ErrorRate

	return (strategy.QualityWeight*qualityFactor +
		strategy.CostWeight*costFactor +
		strategy.LatencyWeight*latencyFactor) * reliabilityFactor
}

// getNormalizationBounds finds the min/max cost and latency from the pool of contenders.
func getNormalizationBounds(contenders map[string]contender) (minCost, maxCost, minLatency, maxLatency float64) {
	minCost, minLatency = math.MaxFloat64, math.MaxFloat64
	for _, c := range contenders {
		minCost = math.Min(minCost, c.EstimatedCost)
		maxCost = math.Max(maxCost, c.EstimatedCost)
		latency := float64(c.Profile.AvgLatencyMS)
		minLatency = math.Min(minLatency, latency)
		maxLatency = math.Max(maxLatency, latency)
	}
	return
}

// passesPreChecks evaluates a model against the budget and reliability thresholds.
func (r *Router) passesPreChecks(profile *ModelProfile, monthlyBudget float64) (bool, string) {
	if monthlyBudget > 0 && profile.CostSpentMonthly >= monthlyBudget {
		return false, fmt.Sprintf("Over monthly budget ($%.4f / $%.2f).", profile.CostSpentMonthly, monthlyBudget)
	}

	t := r.config.Thresholds
	if profile.TotalRequests() > t.MinRequestCount && profile.ErrorRate > t.MaxErrorRate {
		return false, fmt.Sprintf("Error rate is too high (%.2f%% > %.2f%%).", profile.ErrorRate*100, t.MaxErrorRate*100)
	}
	return true, ""
}
