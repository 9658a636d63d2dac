// In file: internal/llm/rewriter.go
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
	"github.com/dileep-u-k/prompt-optimizer/internal/optimizer"
)

const (
	rewriteTemperature = 0.3
	// Profile writes outlive a cancelled request by at most this long.
	profileWriteTimeout = 2 * time.Second
)

const rewriteSystemPrompt = `You are an expert prompt engineer. Improve the user's prompt so a language model can answer it well.
Keep the user's intent. Make the task explicit, add the missing context, audience and output format, and remove vague wording.

Answer in exactly this shape:

Optimized Prompt:
<the improved prompt, as plain text>

Suggestions:
- <one short, concrete suggestion per line, at most five>`

// Rewriter asks a routed model for an improved prompt. It implements
// optimizer.Enricher.
type Rewriter struct {
	clients    map[string]Client
	candidates []string
	router     *Router
	profiler   *Profiler
	cache      *RewriteCache
	budgets    map[string]float64
	maxTokens  int
}

var _ optimizer.Enricher = (*Rewriter)(nil)

// RewriterOptions configures a Rewriter. Zero values select defaults.
type RewriterOptions struct {
	Profiler  *Profiler
	Cache     *RewriteCache
	Budgets   map[string]float64
	MaxTokens int
}

// NewRewriter creates a rewriter over clients keyed by model ID. It returns
// nil when there are no clients, which callers treat as "rewrite disabled".
func NewRewriter(clients map[string]Client, router *Router, opts RewriterOptions) *Rewriter {
	if len(clients) == 0 {
		return nil
	}
	candidates := make([]string, 0, len(clients))
	for id := range clients {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)

	if router == nil {
		router = NewRouter(opts.Profiler, nil)
	}
	for _, id := range candidates {
		if !router.Routable(id) {
			log.Warnf("⚠️ Rewrite model %s has no router metadata (models: in config.yaml) and will never be selected.", id)
		}
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Rewriter{
		clients:    clients,
		candidates: candidates,
		router:     router,
		profiler:   opts.Profiler,
		cache:      opts.Cache,
		budgets:    opts.Budgets,
		maxTokens:  maxTokens,
	}
}

// Models lists the model IDs this rewriter can route to.
func (r *Rewriter) Models() []string {
	return append([]string(nil), r.candidates...)
}

// Enrich makes one rewrite attempt for text.
func (r *Rewriter) Enrich(ctx context.Context, text string, findings *analyzer.Result) (*analyzer.Enrichment, error) {
	if cached, ok := r.cache.Get(ctx, text); ok {
		log.Debug("rewrite cache hit")
		return cached, nil
	}

	if findings == nil {
		findings = analyzer.Analyze(text)
	}
	modelID, err := r.router.SelectModel(ctx, r.candidates, PreferenceFor(findings.Complexity), EstimateTokens(text), r.budgets)
	if err != nil {
		return nil, fmt.Errorf("rewrite model selection failed: %w", err)
	}

	temperature := float32(rewriteTemperature)
	start := time.Now()
	res, err := r.clients[modelID].Generate(ctx, BuildRewriteMessages(text, findings), &GenerationConfig{
		Model:       modelID,
		Temperature: &temperature,
		MaxTokens:   r.maxTokens,
	})
	latency := time.Since(start)

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), profileWriteTimeout)
	defer cancel()
	if err != nil {
		r.profiler.RecordFailure(pctx, modelID)
		return nil, fmt.Errorf("rewrite with %s failed: %w", modelID, err)
	}
	r.profiler.RecordSuccess(pctx, modelID, latency, res.Usage)
	log.Debug("rewrite generated", "model", modelID, "latency", latency, "tokens", res.Usage.TotalTokens)

	enrichment := ParseRewrite(res.Content)
	if enrichment.Empty() {
		return nil, fmt.Errorf("%s: %w", modelID, ErrEmptyRewrite)
	}
	r.cache.Set(pctx, text, enrichment)
	return enrichment, nil
}

// BuildRewriteMessages pairs the system instruction with the prompt and the
// structural findings the model should address.
func BuildRewriteMessages(text string, findings *analyzer.Result) []Message {
	var b strings.Builder
	b.WriteString("Prompt to improve:\n")
	b.WriteString(text)
	if findings != nil {
		fmt.Fprintf(&b, "\n\nCurrent quality score: %d/100.", findings.Score)
		if len(findings.MissingElements) > 0 {
			fmt.Fprintf(&b, "\nMissing: %s.", strings.Join(findings.MissingElements, ", "))
		}
		if len(findings.Improvements) > 0 {
			b.WriteString("\nKnown weaknesses:")
			for _, imp := range findings.Improvements {
				b.WriteString("\n- ")
				b.WriteString(imp)
			}
		}
	}
	return []Message{
		{Role: RoleSystem, Content: rewriteSystemPrompt},
		{Role: RoleUser, Content: b.String()},
	}
}

// EstimateTokens is a rough token count: about four characters per token.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text)/4 + 1
}
