// In file: internal/analyzer/analyzer.go
package analyzer

import "strings"

// MaxSuggestions caps the merged suggestion list.
const MaxSuggestions = 8

// Result is the structured quality assessment of one prompt. A fresh Result is
// built for every call; nothing is shared between calls.
type Result struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`

	Sentiment  Sentiment  `json:"sentiment"`
	Complexity Complexity `json:"complexity"`

	Specificity  int `json:"specificity"`
	Clarity      int `json:"clarity"`
	ContextScore int `json:"contextScore"`

	ActionWords         []string `json:"actionWords"`
	VagueWords          []string `json:"vagueWords"`
	MissingElements     []string `json:"missingElements"`
	TemplateSuggestions []string `json:"templateSuggestions"`

	WordCount      int `json:"wordCount"`
	CharacterCount int `json:"characterCount"`

	OptimizedPrompt string `json:"optimizedPrompt,omitempty"`
}

// Enrichment is the optional output of an external rewrite collaborator.
type Enrichment struct {
	OptimizedPrompt string   `json:"optimizedPrompt"`
	Suggestions     []string `json:"suggestions"`
}

// Empty reports whether e carries nothing worth merging.
func (e *Enrichment) Empty() bool {
	return e == nil || (e.OptimizedPrompt == "" && len(e.Suggestions) == 0)
}

// Analyze runs the structural analyzer, scorer, classifier and template
// recommender over text. It never panics and is deterministic.
func Analyze(text string) *Result {
	s := ExtractSignals(text)
	card := Score(s)

	return &Result{
		Score:        card.Score,
		Strengths:    card.Strengths,
		Improvements: card.Improvements,
		Suggestions:  mergeSuggestions(card.Improvements, nil),

		Sentiment:  ClassifySentiment(s.PositiveCount, s.NegativeCount),
		Complexity: ClassifyComplexity(s.WordCount, s.AvgWordLength),

		Specificity:  Specificity(s.ActionCount),
		Clarity:      Clarity(s.ContextCount, s.VagueCount),
		ContextScore: ContextScore(s.ContextCount),

		ActionWords:         s.ActionWords,
		VagueWords:          s.VagueWords,
		MissingElements:     card.MissingElements,
		TemplateSuggestions: RecommendTemplates(text),

		WordCount:      s.WordCount,
		CharacterCount: s.Length,
	}
}

// WithEnrichment returns a copy of r with the enrichment merged in: suggestions
// become improvements followed by the external suggestions (capped at
// MaxSuggestions) and OptimizedPrompt is set when present. r is not modified.
func (r *Result) WithEnrichment(e *Enrichment) *Result {
	out := *r
	if e.Empty() {
		return &out
	}
	out.Suggestions = mergeSuggestions(r.Improvements, e.Suggestions)
	if e.OptimizedPrompt != "" {
		out.OptimizedPrompt = e.OptimizedPrompt
	}
	return &out
}

// mergeSuggestions keeps improvements first, then the extra suggestions,
// dropping blanks and case-insensitive repeats, capped at MaxSuggestions.
func mergeSuggestions(improvements, extra []string) []string {
	merged := make([]string, 0, min(MaxSuggestions, len(improvements)+len(extra)))
	seen := make(map[string]struct{}, cap(merged))
	for _, list := range [][]string{improvements, extra} {
		for _, s := range list {
			if len(merged) == MaxSuggestions {
				return merged
			}
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, s)
		}
	}
	return merged
}
