// In file: internal/llm/profiler.go
package llm

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

const (
	statusOnline   = "online"
	statusDegraded = "degraded"

	defaultLatencyMS = 2000
	latencyAlpha     = 0.1
	costKeyTTL       = 35 * 24 * time.Hour
)

// ModelCost is the per-token price of a model in USD.
type ModelCost struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}

// ModelProfile tracks performance, cost and reliability metrics for a rewrite model.
type ModelProfile struct {
	ModelID            string  `json:"model_id" redis:"model_id"`
	AvgLatencyMS       int64   `json:"avg_latency_ms" redis:"avg_latency_ms"`
	CostPerInputToken  float64 `json:"cost_per_input_token" redis:"cost_per_input_token"`
	CostPerOutputToken float64 `json:"cost_per_output_token" redis:"cost_per_output_token"`
	Status             string  `json:"status" redis:"status"`
	ErrorRate          float64 `json:"error_rate" redis:"error_rate"`
	TotalSuccesses     int64   `json:"total_successes" redis:"total_successes"`
	TotalFailures      int64   `json:"total_failures" redis:"total_failures"`
	TotalInputTokens   int64   `json:"total_input_tokens" redis:"total_input_tokens"`
	TotalOutputTokens  int64   `json:"total_output_tokens" redis:"total_output_tokens"`
	CostSpentMonthly   float64 `json:"cost_spent_monthly"`
}

// TotalRequests is successes plus failures.
func (p *ModelProfile) TotalRequests() int64 {
	return p.TotalSuccesses + p.TotalFailures
}

// Profiler records rewrite outcomes per model in redis. A nil *Profiler, or
// one without a redis client, records nothing and reports fresh default
// profiles.
type Profiler struct {
	rdb   *redis.Client
	costs map[string]ModelCost
	now   func() time.Time
}

func NewProfiler(rdb *redis.Client, costs map[string]ModelCost) *Profiler {
	for modelID, c := range costs {
		log.Debugf("Loaded cost config for %s: Input=$%.8f/token, Output=$%.8f/token", modelID, c.Input, c.Output)
	}
	return &Profiler{rdb: rdb, costs: costs, now: time.Now}
}

func profileKey(modelID string) string {
	return fmt.Sprintf("profile:%s", modelID)
}

func (p *Profiler) costKey(modelID string) string {
	return fmt.Sprintf("cost:%s:%s", modelID, p.now().Format("2006-01"))
}

// Cost returns the configured price of modelID, or zero when unknown.
func (p *Profiler) Cost(modelID string) ModelCost {
	if p == nil {
		return ModelCost{}
	}
	return p.costs[modelID]
}

// GetProfile retrieves a model's profile, creating a default one if it doesn't exist.
func (p *Profiler) GetProfile(ctx context.Context, modelID string) (*ModelProfile, error) {
	if p == nil || p.rdb == nil {
		return p.defaultProfile(modelID), nil
	}

	key := profileKey(modelID)
	data, err := p.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile for %s: %w", modelID, err)
	}

	var profile *ModelProfile
	if len(data) == 0 {
		if profile, err = p.createDefaultProfile(ctx, modelID); err != nil {
			return nil, err
		}
	} else {
		profile = p.defaultProfile(modelID)
		profile.AvgLatencyMS, _ = strconv.ParseInt(data["avg_latency_ms"], 10, 64)
		profile.Status = data["status"]
		profile.ErrorRate, _ = strconv.ParseFloat(data["error_rate"], 64)
		profile.TotalSuccesses, _ = strconv.ParseInt(data["total_successes"], 10, 64)
		profile.TotalFailures, _ = strconv.ParseInt(data["total_failures"], 10, 64)
		profile.TotalInputTokens, _ = strconv.ParseInt(data["total_input_tokens"], 10, 64)
		profile.TotalOutputTokens, _ = strconv.ParseInt(data["total_output_tokens"], 10, 64)
	}

	// Spend lives under its own monthly key and may exist without a profile hash.
	spent, err := p.rdb.Get(ctx, p.costKey(modelID)).Float64()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read monthly spend for %s: %w", modelID, err)
	}
	profile.CostSpentMonthly = spent

	return profile, nil
}

func (p *Profiler) defaultProfile(modelID string) *ModelProfile {
	cost := p.Cost(modelID)
	return &ModelProfile{
		ModelID:            modelID,
		AvgLatencyMS:       defaultLatencyMS,
		CostPerInputToken:  cost.Input,
		CostPerOutputToken: cost.Output,
		Status:             statusOnline,
	}
}

func (p *Profiler) createDefaultProfile(ctx context.Context, modelID string) (*ModelProfile, error) {
	if _, ok := p.costs[modelID]; !ok {
		log.Warnf("No cost information for model '%s'. Defaulting to zero cost.", modelID)
	}
	profile := p.defaultProfile(modelID)

	key := profileKey(modelID)
	pipe := p.rdb.Pipeline()
	pipe.HSet(ctx, key,
		"model_id", profile.ModelID,
		"avg_latency_ms", profile.AvgLatencyMS,
		"status", profile.Status,
		"total_successes", 0,
		"total_failures", 0,
		"error_rate", 0.0,
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", modelID, err)
	}

	log.Debugf("Created new profile for %s", modelID)
	return profile, nil
}

// RecordSuccess folds a successful call into the model's profile and spend.
func (p *Profiler) RecordSuccess(ctx context.Context, modelID string, latency time.Duration, usage Usage) {
	if p == nil || p.rdb == nil {
		return
	}
	key := profileKey(modelID)

	// EWMA latency under WATCH so concurrent updates do not lose samples.
	err := p.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "avg_latency_ms").Int64()
		if err == redis.Nil {
			current = latency.Milliseconds()
		} else if err != nil {
			return err
		}
		next := int64(latencyAlpha*float64(latency.Milliseconds()) + (1.0-latencyAlpha)*float64(current))
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "avg_latency_ms", next)
			return nil
		})
		return err
	}, key)
	if err != nil {
		log.Errorf("Error updating latency for %s: %v", modelID, err)
	}

	cost := p.Cost(modelID)
	callCost := float64(usage.PromptTokens)*cost.Input + float64(usage.CompletionTokens)*cost.Output
	costKey := p.costKey(modelID)

	pipe := p.rdb.Pipeline()
	successes := pipe.HIncrBy(ctx, key, "total_successes", 1)
	failures := pipe.HGet(ctx, key, "total_failures")
	pipe.HIncrBy(ctx, key, "total_input_tokens", int64(usage.PromptTokens))
	pipe.HIncrBy(ctx, key, "total_output_tokens", int64(usage.CompletionTokens))
	pipe.HSet(ctx, key, "status", statusOnline)
	pipe.IncrByFloat(ctx, costKey, callCost)
	pipe.Expire(ctx, costKey, costKeyTTL)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		log.Errorf("Error in success update pipeline for %s: %v", modelID, err)
		return
	}

	totalFailures, _ := strconv.ParseInt(failures.Val(), 10, 64)
	p.storeErrorRate(ctx, key, totalFailures, successes.Val()+totalFailures)
}

// RecordFailure counts a failed call and marks the model degraded.
func (p *Profiler) RecordFailure(ctx context.Context, modelID string) {
	if p == nil || p.rdb == nil {
		return
	}
	key := profileKey(modelID)

	pipe := p.rdb.Pipeline()
	failures := pipe.HIncrBy(ctx, key, "total_failures", 1)
	successes := pipe.HGet(ctx, key, "total_successes")
	pipe.HSet(ctx, key, "status", statusDegraded)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		log.Errorf("Error in failure update pipeline for %s: %v", modelID, err)
		return
	}

	totalSuccesses, _ := strconv.ParseInt(successes.Val(), 10, 64)
	p.storeErrorRate(ctx, key, failures.Val(), totalSuccesses+failures.Val())
}

func (p *Profiler) storeErrorRate(ctx context.Context, key string, failures, total int64) {
	if total <= 0 {
		return
	}
	if err := p.rdb.HSet(ctx, key, "error_rate", float64(failures)/float64(total)).Err(); err != nil {
		log.Errorf("Error storing error rate at %s: %v", key, err)
	}
}
