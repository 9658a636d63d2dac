package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRewrite(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		prompt      string
		suggestions []string
	}{
		{
			name: "markdown heading section with quotes",
			raw: "Here is an improved version of your prompt.\n\n" +
				"## Optimized Prompt\n" +
				"\"Write a 300-word blog post for beginner developers about Go channels.\"\n\n" +
				"## Suggestions\n" +
				"- Specify the audience.\n" +
				"- Add an example.\n" +
				"1. Mention the format.\n",
			prompt:      "Write a 300-word blog post for beginner developers about Go channels.",
			suggestions: []string{"Specify the audience.", "Add an example.", "Mention the format."},
		},
		{
			name: "inline bold label",
			raw: "**Improved Prompt:** Draft a polite email to a client explaining the delay.\n\n" +
				"**Why it's better:**\n" +
				"• Names the audience\n" +
				"•States the tone\n",
			prompt:      "Draft a polite email to a client explaining the delay.",
			suggestions: []string{"Names the audience", "States the tone"},
		},
		{
			name: "code fence removed",
			raw: "Optimized Prompt:\n" +
				"```text\n" +
				"Summarize the attached report in five bullet points for executives.\n" +
				"```\n" +
				"Notes:\n" +
				"- Keep it short\n",
			prompt:      "Summarize the attached report in five bullet points for executives.",
			suggestions: []string{"Keep it short"},
		},
		{
			name: "bullets inside the section are not suggestions",
			raw: "Improved Version:\n" +
				"Plan a three-day trip to Rome.\n" +
				"- Include museums\n" +
				"\n" +
				"Tips:\n" +
				"* Give a budget\n",
			prompt:      "Plan a three-day trip to Rome.\n- Include museums",
			suggestions: []string{"Give a budget"},
		},
		{
			name: "fallback to last long paragraph",
			raw: "Sure! Here are some thoughts.\n\n" +
				"- Be specific\n- Add context\n\n" +
				"Write a detailed, step-by-step guide for first-time home buyers explaining how mortgages work.\n\n" +
				"- Short bullet\n",
			prompt:      "Write a detailed, step-by-step guide for first-time home buyers explaining how mortgages work.",
			suggestions: []string{"Be specific", "Add context", "Short bullet"},
		},
		{
			name:        "label words inside a sentence are not a label",
			raw:         "Improved prompting matters.",
			prompt:      "",
			suggestions: []string{},
		},
		{
			name:        "nothing usable",
			raw:         "Looks fine.\n\nOk.",
			prompt:      "",
			suggestions: []string{},
		},
		{
			name:        "bold text and other numbers are not bullets",
			raw:         "**Bold line**\n4. Fourth\n-dash without space",
			prompt:      "",
			suggestions: []string{},
		},
		{
			name:        "windows line endings",
			raw:         "Optimized Prompt:\r\nList three risks of the migration plan for the CTO.\r\n\r\nTips:\r\n- Be brief\r\n",
			prompt:      "List three risks of the migration plan for the CTO.",
			suggestions: []string{"Be brief"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRewrite(tt.raw)
			assert.Equal(t, tt.prompt, got.OptimizedPrompt)
			assert.Equal(t, tt.suggestions, got.Suggestions)
		})
	}
}

func TestParseRewrite_CapsSuggestions(t *testing.T) {
	raw := strings.Repeat("- tip\n", 7)
	assert.Len(t, ParseRewrite(raw).Suggestions, maxExtractedSuggestions)
}

func TestParseRewrite_NeverPanics(t *testing.T) {
	inputs := []string{
		"", "\n\n\n", "```", "Optimized Prompt:", "Optimized Prompt:\n```", "\"", "“”",
		"- ", "•", "1.", "## Optimized Prompt\n## Next", strings.Repeat("x", 10000),
		"\xff\xfe invalid utf8 \xff",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := ParseRewrite(in)
			assert.NotNil(t, got)
			assert.LessOrEqual(t, len(got.Suggestions), maxExtractedSuggestions)
		}, "input %q", in)
	}
}

func TestCleanPrompt(t *testing.T) {
	assert.Equal(t, "hello", cleanPrompt(`"hello"`))
	assert.Equal(t, "hello", cleanPrompt("“hello”"))
	assert.Equal(t, "hello", cleanPrompt("```\nhello\n```"))
	assert.Equal(t, `say "hi"`, cleanPrompt(`say "hi"`))
	assert.Equal(t, `"`, cleanPrompt(`"`))
}
