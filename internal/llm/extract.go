// In file: internal/llm/extract.go
package llm

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

const (
	maxExtractedSuggestions = 5
	minFallbackParagraph    = 50
)

var (
	// A labeled optimized-prompt line, tolerating markdown decoration and
	// content on the same line after the colon.
	optimizedLabel = regexp.MustCompile(
		`(?i)^[#>*_\s]*(?:optimized prompt|improved prompt|improved version|optimized version|rewritten prompt)\b[*_\s]*(?::[*_\s]*(.*)|$)`,
	)

	// Any line that opens a new section: markdown headings, bold-only lines and
	// short "Label:" lines.
	sectionHeader = regexp.MustCompile(`^(?:#{1,6}\s+\S.*|\*\*[^*]+\*\*:?|__[^_]+__:?|[A-Z][A-Za-z ']{0,40}:)$`)

	suggestionPrefix = regexp.MustCompile(`^(?:•\s*|[-*]\s+|[123]\.\s+)`)
)

// ParseRewrite reads free-form rewrite output into an enrichment. It is a
// best-effort parser: it never panics and returns at most five suggestions.
// The result is never nil but may be empty.
func ParseRewrite(raw string) *analyzer.Enrichment {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	used := make([]bool, len(lines))

	prompt := labeledSection(lines, used)
	if prompt == "" {
		prompt = fallbackParagraph(lines, used)
	}

	suggestions := []string{}
	for i, line := range lines {
		if used[i] || len(suggestions) == maxExtractedSuggestions {
			continue
		}
		trimmed := strings.TrimSpace(line)
		loc := suggestionPrefix.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		if s := strings.TrimSpace(trimmed[loc[1]:]); s != "" {
			suggestions = append(suggestions, s)
		}
	}

	return &analyzer.Enrichment{OptimizedPrompt: prompt, Suggestions: suggestions}
}

// labeledSection returns the text under the first optimized-prompt label, up
// to the next section header, and marks those lines as used.
func labeledSection(lines []string, used []bool) string {
	for i, line := range lines {
		m := optimizedLabel.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		body := []string{m[1]}
		used[i] = true
		inFence := false
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if strings.HasPrefix(trimmed, "```") {
				inFence = !inFence
			} else if !inFence && sectionHeader.MatchString(trimmed) {
				break
			}
			body = append(body, lines[j])
			used[j] = true
		}

		if text := cleanPrompt(strings.Join(body, "\n")); text != "" {
			return text
		}
	}
	return ""
}

// fallbackParagraph returns the last paragraph long enough to be a prompt that
// is not itself a bullet list.
func fallbackParagraph(lines []string, used []bool) string {
	type span struct{ start, end int }
	var paragraphs []span
	start := -1
	for i := 0; i <= len(lines); i++ {
		blank := i == len(lines) || strings.TrimSpace(lines[i]) == ""
		switch {
		case blank && start >= 0:
			paragraphs = append(paragraphs, span{start, i})
			start = -1
		case !blank && start < 0:
			start = i
		}
	}

	for k := len(paragraphs) - 1; k >= 0; k-- {
		p := paragraphs[k]
		first := strings.TrimSpace(lines[p.start])
		if suggestionPrefix.MatchString(first) || sectionHeader.MatchString(first) && p.end-p.start == 1 {
			continue
		}
		text := cleanPrompt(strings.Join(lines[p.start:p.end], "\n"))
		if utf8.RuneCountInString(text) < minFallbackParagraph {
			continue
		}
		for i := p.start; i < p.end; i++ {
			used[i] = true
		}
		return text
	}
	return ""
}

var quotePairs = [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}, {"«", "»"}, {"`", "`"}}

// cleanPrompt drops code fences and one layer of wrapping quotes.
func cleanPrompt(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	s = strings.TrimSpace(strings.Join(kept, "\n"))

	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}
