// In file: internal/llm/mistral_client.go
package llm

import "errors"

// MistralClient talks to Mistral's OpenAI-compatible chat completions API.
type MistralClient struct {
	*OpenAIClient
}

var _ Client = (*MistralClient)(nil)

func NewMistralClient(apiKey string) (*MistralClient, error) {
	if apiKey == "" {
		return nil, errors.New("Mistral API key cannot be empty")
	}
	c, err := NewOpenAICompatibleClient("mistral", apiKey, mistralBaseURL)
	if err != nil {
		return nil, err
	}
	return &MistralClient{OpenAIClient: c}, nil
}
