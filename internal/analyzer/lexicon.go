// In file: internal/analyzer/lexicon.go

// Package analyzer implements the heuristic prompt-quality engine: it extracts
// structural signals from raw prompt text, scores them with fixed weighted
// rules, classifies sentiment and complexity, and recommends prompt templates.
//
// Everything in this package is a pure function of its input. The lexicons are
// compiled once at package initialization and never written afterwards, so
// Analyze is safe for concurrent use without locking.
package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon is a named, immutable set of lowercase entries matched against text
// as whole words, case-insensitively. Entries may be short phrases.
type Lexicon struct {
	name    string
	words   []string
	index   map[string]struct{}
	pattern *regexp.Regexp
}

// NewLexicon builds a lexicon from the given entries. Entries are lowercased,
// trimmed and deduplicated; empty entries are dropped.
func NewLexicon(name string, entries ...string) *Lexicon {
	index := make(map[string]struct{}, len(entries))
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		w := strings.ToLower(strings.TrimSpace(e))
		if w == "" {
			continue
		}
		if _, dup := index[w]; dup {
			continue
		}
		index[w] = struct{}{}
		words = append(words, w)
	}

	// Longest alternatives first so phrases win over their own prefixes.
	alts := make([]string, len(words))
	copy(alts, words)
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	for i, a := range alts {
		alts[i] = regexp.QuoteMeta(a)
	}

	var pattern *regexp.Regexp
	if len(alts) > 0 {
		pattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	}

	return &Lexicon{name: name, words: words, index: index, pattern: pattern}
}

// Name returns the lexicon's display name.
func (l *Lexicon) Name() string { return l.name }

// Words returns a copy of the lexicon entries in declaration order.
func (l *Lexicon) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// Len returns the number of distinct entries.
func (l *Lexicon) Len() int { return len(l.words) }

// Contains reports whether word is an entry, ignoring case.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.index[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// FindAll returns every occurrence of a lexicon entry in text, lowercased and
// in text order. Duplicates are kept.
func (l *Lexicon) FindAll(text string) []string {
	if l.pattern == nil || text == "" {
		return nil
	}
	matches := l.pattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}

// Count returns the number of occurrences of lexicon entries in text.
func (l *Lexicon) Count(text string) int {
	if l.pattern == nil || text == "" {
		return 0
	}
	return len(l.pattern.FindAllStringIndex(text, -1))
}

// Unique lowercases matches and drops repeats, keeping first-seen order.
func Unique(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ToLower(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// =================================================================================
// Lexical resource tables
// =================================================================================

var (
	// ActionWords are imperative verbs that tell the model what to do.
	ActionWords = NewLexicon("Action words",
		"write", "create", "generate", "analyze", "analyse", "explain", "describe", "list",
		"summarize", "summarise", "compare", "contrast", "evaluate", "design", "develop",
		"build", "draft", "outline", "translate", "review", "identify", "classify",
		"calculate", "provide", "suggest", "recommend", "rewrite", "edit", "optimize",
		"plan", "organize", "define", "illustrate", "demonstrate", "convert", "extract",
		"format", "brainstorm", "research", "investigate", "assess", "critique", "solve",
		"implement", "compose", "produce", "prepare", "answer", "discuss", "propose",
		"predict", "prioritize", "simplify", "expand", "categorize", "rank", "debug",
		"refactor", "test", "document", "map", "structure", "compile", "examine",
		"interpret", "justify", "paraphrase", "proofread", "estimate",
	)

	// VagueWords are fillers and hedges that dilute instructions.
	VagueWords = NewLexicon("Vague words",
		"something", "stuff", "things", "thing", "good", "nice", "better", "some",
		"maybe", "perhaps", "probably", "etc", "whatever", "various", "several", "many",
		"few", "somehow", "somewhat", "really", "very", "quite", "pretty", "basically",
		"just", "generally", "usually", "sometimes", "interesting", "anything",
		"everything", "okay", "ok", "lots", "random", "certain", "kind of", "sort of",
		"a bit", "and so on",
	)

	// ContextWords signal background, purpose or constraints.
	ContextWords = NewLexicon("Context",
		"context", "background", "because", "since", "purpose", "goal", "goals",
		"objective", "objectives", "audience", "situation", "scenario", "given",
		"assume", "assuming", "constraint", "constraints", "requirement", "requirements",
		"specifically", "regarding", "considering", "currently", "project", "company",
		"role", "task", "in order to", "so that", "based on", "limitations", "deadline",
	)

	// FormatWords signal an expected output format or structure.
	FormatWords = NewLexicon("Output format",
		"format", "structure", "structured", "bullet", "bullets", "bullet points", "list",
		"table", "json", "markdown", "csv", "yaml", "xml", "steps", "step-by-step",
		"outline", "paragraph", "paragraphs", "heading", "headings", "sections",
		"numbered", "template", "word count", "words or less", "sentences",
	)

	// ExampleWords signal that the prompt carries or requests examples.
	ExampleWords = NewLexicon("Examples",
		"example", "examples", "e.g", "for instance", "such as", "sample", "samples",
		"like this", "for example", "illustration",
	)

	// AudienceWords signal who the output is for.
	AudienceWords = NewLexicon("Target audience",
		"audience", "beginner", "beginners", "expert", "experts", "student", "students",
		"children", "kids", "professional", "professionals", "reader", "readers",
		"customer", "customers", "client", "clients", "developer", "developers",
		"engineer", "engineers", "manager", "managers", "executive", "executives",
		"stakeholders", "non-technical", "persona", "target", "users", "team",
	)

	// PositiveWords is the affect lexicon for positive sentiment.
	PositiveWords = NewLexicon("Positive sentiment",
		"good", "great", "excellent", "amazing", "awesome", "wonderful", "fantastic",
		"positive", "happy", "love", "best", "beautiful", "brilliant", "helpful",
		"useful", "effective", "efficient", "clear", "engaging", "fun", "exciting",
		"friendly", "successful", "success", "improve", "improved", "perfect", "enjoy",
		"glad", "pleased", "impressive", "innovative", "inspiring", "creative",
		"powerful", "valuable", "benefit", "benefits", "win", "easy", "delightful",
		"outstanding", "superb", "thank", "thanks", "appreciate", "optimistic",
		"confident", "calm", "kind", "warm", "welcoming", "celebrate", "joy",
	)

	// NegativeWords is the affect lexicon for negative sentiment.
	NegativeWords = NewLexicon("Negative sentiment",
		"bad", "terrible", "awful", "horrible", "poor", "worst", "hate", "angry", "sad",
		"negative", "problem", "problems", "issue", "issues", "fail", "failed",
		"failure", "wrong", "error", "errors", "broken", "confusing", "confused",
		"boring", "annoying", "frustrating", "frustrated", "ugly", "useless", "slow",
		"disappointing", "disappointed", "worried", "fear", "risk", "risky",
		"complaint", "complain", "unfortunately", "toxic", "harmful", "dangerous",
		"weak", "mess", "messy", "crash", "painful", "stupid", "upset", "worse",
	)
)

// Lexicons returns the process-wide lexicons in a stable order.
func Lexicons() []*Lexicon {
	return []*Lexicon{
		ActionWords, VagueWords, ContextWords, FormatWords,
		ExampleWords, AudienceWords, PositiveWords, NegativeWords,
	}
}
