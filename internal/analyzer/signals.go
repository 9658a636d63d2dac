// In file: internal/analyzer/signals.go
package analyzer

import (
	"strings"
	"unicode/utf8"
)

// Signals is the intermediate bundle every later stage reads from. Counts are
// raw occurrence counts; ActionWords and VagueWords are the deduplicated,
// lowercased matches reported back to callers.
type Signals struct {
	Length        int
	WordCount     int
	AvgWordLength float64

	ActionCount   int
	VagueCount    int
	ContextCount  int
	PositiveCount int
	NegativeCount int

	ActionWords []string
	VagueWords  []string

	HasFormat     bool
	HasExamples   bool
	HasAudience   bool
	QuestionMarks int
}

// ExtractSignals reads every length and lexicon signal from text. It accepts
// any string, including the empty one.
func ExtractSignals(text string) Signals {
	words := strings.Fields(text)
	wordCount, totalRunes := 0, 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if n == 0 {
			continue
		}
		wordCount++
		totalRunes += n
	}

	var avg float64
	if wordCount > 0 {
		avg = float64(totalRunes) / float64(wordCount)
	}

	actions := ActionWords.FindAll(text)
	vague := VagueWords.FindAll(text)

	return Signals{
		Length:        utf8.RuneCountInString(text),
		WordCount:     wordCount,
		AvgWordLength: avg,

		ActionCount:   len(actions),
		VagueCount:    len(vague),
		ContextCount:  ContextWords.Count(text),
		PositiveCount: PositiveWords.Count(text),
		NegativeCount: NegativeWords.Count(text),

		ActionWords: Unique(actions),
		VagueWords:  Unique(vague),

		HasFormat:     FormatWords.Count(text) > 0,
		HasExamples:   ExampleWords.Count(text) > 0,
		HasAudience:   AudienceWords.Count(text) > 0,
		QuestionMarks: strings.Count(text, "?"),
	}
}
