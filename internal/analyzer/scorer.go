// In file: internal/analyzer/scorer.go
package analyzer

import (
	"fmt"
	"strings"
)

// Rule weights. Every rule is independent and purely additive.
const (
	shortTextLength = 50
	goodTextLength  = 100
	longTextLength  = 2000

	shortTextPenalty = -20
	longTextPenalty  = -10
	goodLengthBonus  = 10

	actionWordWeight   = 2
	actionWordBonusCap = 15
	noActionPenalty    = -15

	contextBonus     = 10
	noContextPenalty = -10

	formatBonus     = 10
	noFormatPenalty = -5

	exampleBonus     = 15
	noExamplePenalty = -5

	audienceBonus     = 10
	noAudiencePenalty = -5

	manyQuestionsThreshold = 3
	manyQuestionsPenalty   = -10
	singleQuestionBonus    = 5

	vagueWordWeight     = 3
	vagueWordPenaltyCap = 20
	vagueWordsNamed     = 3

	minScore = 0
	maxScore = 100
)

// Missing element categories.
const (
	MissingActionWords = "Action words"
	MissingContext     = "Context"
)

// Scorecard is the Scorer's output: a bounded score plus categorized feedback.
type Scorecard struct {
	Score           int
	Strengths       []string
	Improvements    []string
	MissingElements []string
}

// Score applies every weighted rule to s and clamps the total to [0, 100].
func Score(s Signals) Scorecard {
	card := Scorecard{
		Strengths:       []string{},
		Improvements:    []string{},
		MissingElements: []string{},
	}
	score := 0

	// Length bands: <50, 100..2000 and >2000 never overlap. 50..100 is neutral.
	switch {
	case s.Length < shortTextLength:
		score += shortTextPenalty
		card.Improvements = append(card.Improvements,
			"Prompt is too short. Add more detail about what you want and why.")
	case s.Length > longTextLength:
		score += longTextPenalty
		card.Improvements = append(card.Improvements,
			"Prompt is very long. Consider trimming it to the essential instructions.")
	case s.Length > goodTextLength:
		score += goodLengthBonus
		card.Strengths = append(card.Strengths, "Good length with enough detail to work with.")
	}

	if s.ActionCount > 0 {
		score += min(actionWordBonusCap, s.ActionCount*actionWordWeight)
		card.Strengths = append(card.Strengths,
			fmt.Sprintf("Uses clear action words (%s).", strings.Join(s.ActionWords, ", ")))
	} else {
		score += noActionPenalty
		card.Improvements = append(card.Improvements,
			"Start with a clear action verb such as \"write\", \"analyze\" or \"create\".")
		card.MissingElements = append(card.MissingElements, MissingActionWords)
	}

	if s.ContextCount > 0 {
		score += contextBonus
		card.Strengths = append(card.Strengths, "Provides context or background information.")
	} else {
		score += noContextPenalty
		card.Improvements = append(card.Improvements,
			"Add context: explain the background, purpose or constraints of the task.")
		card.MissingElements = append(card.MissingElements, MissingContext)
	}

	if s.HasFormat {
		score += formatBonus
		card.Strengths = append(card.Strengths, "Specifies the desired output format or structure.")
	} else {
		score += noFormatPenalty
		card.Improvements = append(card.Improvements,
			"Specify the output format, e.g. a bullet list, table, JSON or word count.")
	}

	if s.HasExamples {
		score += exampleBonus
		card.Strengths = append(card.Strengths, "Includes examples to guide the response.")
	} else {
		score += noExamplePenalty
		card.Improvements = append(card.Improvements,
			"Include an example of the output you expect.")
	}

	if s.HasAudience {
		score += audienceBonus
		card.Strengths = append(card.Strengths, "Identifies the target audience.")
	} else {
		score += noAudiencePenalty
		card.Improvements = append(card.Improvements,
			"Define the target audience so tone and depth can be matched.")
	}

	switch {
	case s.QuestionMarks > manyQuestionsThreshold:
		score += manyQuestionsPenalty
		card.Improvements = append(card.Improvements,
			"Too many questions in one prompt. Focus on one main question or split the prompt.")
	case s.QuestionMarks == 1:
		score += singleQuestionBonus
		card.Strengths = append(card.Strengths, "Asks a clear single question.")
	}

	if s.VagueCount > 0 {
		score -= min(vagueWordPenaltyCap, s.VagueCount*vagueWordWeight)
		named := s.VagueWords
		if len(named) > vagueWordsNamed {
			named = named[:vagueWordsNamed]
		}
		card.Improvements = append(card.Improvements,
			fmt.Sprintf("Replace vague words (%s) with specific details.", strings.Join(named, ", ")))
	}

	card.Score = clamp(score, minScore, maxScore)
	return card
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
