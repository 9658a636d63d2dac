// In file: internal/analyzer/classifier.go
package analyzer

// Sentiment is the affect classification of a prompt.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Complexity is the size/density classification of a prompt.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

const (
	simpleMaxWords     = 20
	simpleMaxAvgLength = 5.0
	complexMinWords    = 50
	complexMinAvgLen   = 7.0

	specificityPerAction = 10
	// specificityDoubleCount reproduces the established doubled contribution of
	// the action-word signal. Set to 1 to count it once.
	specificityDoubleCount = 2

	clarityContextBonus = 15
	clarityPerContext   = 15
	clarityPerVague     = 5

	contextScorePerMatch = 20
)

// ClassifySentiment compares affect counts. Ties, including 0/0, are neutral.
func ClassifySentiment(positive, negative int) Sentiment {
	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ClassifyComplexity bands a prompt by word count and mean word length. The
// simple band is checked first.
func ClassifyComplexity(wordCount int, avgWordLength float64) Complexity {
	if wordCount < simpleMaxWords && avgWordLength < simpleMaxAvgLength {
		return ComplexitySimple
	}
	if wordCount > complexMinWords || avgWordLength > complexMinAvgLen {
		return ComplexityComplex
	}
	return ComplexityModerate
}

// Specificity scales linearly with action-word occurrences, capped at 100.
func Specificity(actionCount int) int {
	return min(maxScore, actionCount*specificityPerAction*specificityDoubleCount)
}

// Clarity rewards context and penalizes vagueness. Only the upper bound is
// enforced; the value may be negative.
func Clarity(contextCount, vagueCount int) int {
	clarity := 0
	if contextCount > 0 {
		clarity += clarityContextBonus
	}
	clarity += contextCount*clarityPerContext - vagueCount*clarityPerVague
	return min(maxScore, clarity)
}

// ContextScore measures how much background the prompt carries, in [0, 100].
func ContextScore(contextCount int) int {
	return clamp(contextCount*contextScorePerMatch, minScore, maxScore)
}
