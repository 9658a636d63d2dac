package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexicon_NormalizesEntries(t *testing.T) {
	lex := NewLexicon("test", "Write", "write ", "", "CREATE", "create")

	assert.Equal(t, "test", lex.Name())
	assert.Equal(t, []string{"write", "create"}, lex.Words())
	assert.Equal(t, 2, lex.Len())
	assert.True(t, lex.Contains("WRITE"))
	assert.True(t, lex.Contains(" create "))
	assert.False(t, lex.Contains("rewrite"))
}

func TestLexicon_WordsReturnsCopy(t *testing.T) {
	lex := NewLexicon("test", "alpha")
	words := lex.Words()
	words[0] = "mutated"

	assert.Equal(t, []string{"alpha"}, lex.Words())
}

func TestLexicon_FindAll(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		text    string
		want    []string
	}{
		{
			name:    "whole words only",
			entries: []string{"write"},
			text:    "rewrite the writer; WRITE now, write!",
			want:    []string{"write", "write"},
		},
		{
			name:    "phrases win over prefixes",
			entries: []string{"kind", "kind of"},
			text:    "It is Kind of odd and kind.",
			want:    []string{"kind of", "kind"},
		},
		{
			name:    "plural is a distinct entry",
			entries: []string{"example", "examples"},
			text:    "Examples help. One example is enough.",
			want:    []string{"examples", "example"},
		},
		{
			name:    "abbreviation with dots",
			entries: []string{"e.g"},
			text:    "Use a formal tone, e.g. like a lawyer.",
			want:    []string{"e.g"},
		},
		{
			name:    "no matches",
			entries: []string{"write"},
			text:    "nothing here",
			want:    nil,
		},
		{
			name:    "empty text",
			entries: []string{"write"},
			text:    "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := NewLexicon("test", tt.entries...)
			assert.Equal(t, tt.want, lex.FindAll(tt.text))
			assert.Equal(t, len(tt.want), lex.Count(tt.text))
		})
	}
}

func TestLexicon_EmptyLexiconNeverMatches(t *testing.T) {
	lex := NewLexicon("empty")

	assert.Zero(t, lex.Count("anything at all"))
	assert.Nil(t, lex.FindAll("anything at all"))
	assert.False(t, lex.Contains("anything"))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"write", "create"}, Unique([]string{"Write", "write", "CREATE", "create"}))
	assert.Equal(t, []string{}, Unique(nil))
}

func TestLexicons_AreNonEmptyAndLowercase(t *testing.T) {
	lexicons := Lexicons()
	require.Len(t, lexicons, 8)

	for _, lex := range lexicons {
		t.Run(lex.Name(), func(t *testing.T) {
			require.NotZero(t, lex.Len())
			for _, w := range lex.Words() {
				assert.True(t, lex.Contains(w))
				assert.Equal(t, 1, lex.Count(w), "entry %q should match itself exactly once", w)
			}
		})
	}
}

func TestLexicons_CoreEntries(t *testing.T) {
	assert.True(t, ActionWords.Contains("write"))
	assert.True(t, ActionWords.Contains("create"))
	assert.True(t, ActionWords.Contains("analyze"))
	assert.True(t, VagueWords.Contains("something"))
	assert.True(t, ContextWords.Contains("because"))
	assert.True(t, ExampleWords.Contains("for example"))
	assert.True(t, AudienceWords.Contains("beginners"))
}
