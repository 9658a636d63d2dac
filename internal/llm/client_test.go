package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderForModel(t *testing.T) {
	tests := []struct {
		model string
		want  Provider
	}{
		{"gpt-4o-mini", ProviderOpenAI},
		{"GPT-4o", ProviderOpenAI},
		{"o3-mini", ProviderOpenAI},
		{"claude-3-5-haiku-latest", ProviderAnthropic},
		{"gemini-1.5-flash", ProviderGemini},
		{"mistral-small-latest", ProviderMistral},
		{"open-mistral-nemo", ProviderMistral},
		{"codestral-latest", ProviderMistral},
	}
	for _, tt := range tests {
		got, err := ProviderForModel(tt.model)
		require.NoError(t, err, tt.model)
		assert.Equal(t, tt.want, got, tt.model)
	}

	_, err := ProviderForModel("llama-3-70b")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewClientForModel_Errors(t *testing.T) {
	_, err := NewClientForModel("llama-3", "key")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	for _, model := range []string{"gpt-4o", "claude-3-5-haiku-latest", "gemini-1.5-flash", "mistral-small-latest"} {
		c, err := NewClientForModel(model, "")
		assert.Error(t, err, model)
		assert.Nil(t, c, model)
	}
}

func TestNewClients(t *testing.T) {
	clients := NewClients(
		[]string{"gpt-4o-mini", "gpt-4o", "claude-3-5-haiku-latest", "mistral-small-latest", "gemini-1.5-flash", "llama-3"},
		map[Provider]string{
			ProviderOpenAI:    "sk-test",
			ProviderAnthropic: "sk-ant-test",
			ProviderMistral:   "mistral-test",
		},
	)

	require.Len(t, clients, 4)
	assert.IsType(t, &OpenAIClient{}, clients["gpt-4o"])
	assert.IsType(t, &AnthropicClient{}, clients["claude-3-5-haiku-latest"])
	assert.IsType(t, &MistralClient{}, clients["mistral-small-latest"])
	assert.Same(t, clients["gpt-4o"], clients["gpt-4o-mini"], "one client per provider")
	assert.NotContains(t, clients, "gemini-1.5-flash")
	assert.NotContains(t, clients, "llama-3")
}

func TestSplitSystem(t *testing.T) {
	system, turns := splitSystem([]Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleSystem, Content: "b"},
	})

	assert.Equal(t, "a\n\nb", system)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, turns)
}
