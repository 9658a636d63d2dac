// In file: internal/llm/openai_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the client for OpenAI chat models. It also serves any
// OpenAI-compatible endpoint through NewOpenAICompatibleClient.
type OpenAIClient struct {
	client *openai.Client
	name   string
}

// Statically verify that OpenAIClient implements the Client interface.
var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the OpenAI API.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	return newOpenAICompatible("openai", openai.DefaultConfig(apiKey)), nil
}

// NewOpenAICompatibleClient creates a client for an OpenAI-compatible API at
// baseURL, such as a local proxy or a test server.
func NewOpenAICompatibleClient(name, apiKey, baseURL string) (*OpenAIClient, error) {
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return newOpenAICompatible(name, cfg), nil
}

func newOpenAICompatible(name string, cfg openai.ClientConfig) *OpenAIClient {
	cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), name: name}
}

// Generate performs a single chat completion request.
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error) {
	req := openai.ChatCompletionRequest{
		Model:    config.Model,
		Messages: toOpenAIMessages(messages),
	}
	if config.MaxTokens > 0 {
		req.MaxTokens = config.MaxTokens
	}
	if config.Temperature != nil {
		req.Temperature = *config.Temperature
	}
	if config.TopP != nil {
		req.TopP = *config.TopP
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s chat completion failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%s: %w", c.name, ErrEmptyResponse)
	}

	return &GenerationResult{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// toOpenAIMessages converts our internal messages to the go-openai format.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return out
}
