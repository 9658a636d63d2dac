// In file: internal/analyzer/templates.go
package analyzer

import "strings"

// Template categories, in recommendation priority order.
const (
	TemplateContentCreation = "Content Creation"
	TemplateAnalysis        = "Analysis & Research"
	TemplateCommunication   = "Communication"
	TemplateCodeGeneration  = "Code Generation"
)

const maxTemplateSuggestions = 3

type templateCue struct {
	category string
	keywords []string
}

// templateCues is checked in order; order is the recommendation priority.
var templateCues = []templateCue{
	{TemplateContentCreation, []string{"write", "create"}},
	{TemplateAnalysis, []string{"analyze", "review"}},
	{TemplateCommunication, []string{"email", "message"}},
	{TemplateCodeGeneration, []string{"code", "programming"}},
}

// RecommendTemplates returns up to three template categories whose cue words
// appear anywhere in text, ignoring case.
func RecommendTemplates(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, maxTemplateSuggestions)
	for _, cue := range templateCues {
		if len(out) == maxTemplateSuggestions {
			break
		}
		for _, kw := range cue.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, cue.category)
				break
			}
		}
	}
	return out
}
