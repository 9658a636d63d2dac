// In file: internal/llm/client.go

// Package llm is the rewrite collaborator: provider clients behind a single
// interface, a redis-backed model profiler and router, a rewrite cache, and the
// best-effort parser that turns free-form model output into an enrichment.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// =================================================================================
// Core Data Structures
// =================================================================================

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message sent to a model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig controls a single generation call.
type GenerationConfig struct {
	// The specific model to use (e.g. "gpt-4o-mini", "claude-3-5-haiku-latest").
	Model string
	// Pointer so 0.0 can be told apart from unset.
	Temperature *float32
	// The maximum number of tokens to generate. Zero means provider default.
	MaxTokens int
	TopP      *float32
}

// Usage holds token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult holds the complete output of a model call.
type GenerationResult struct {
	Content string
	Usage   Usage
}

// =================================================================================
// LLM Client Interface
// =================================================================================

// Client is the interface every provider client implements. Implementations
// make exactly one attempt per call; retries are the caller's decision.
type Client interface {
	Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error)
}

// Provider names a model vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderMistral   Provider = "mistral"
)

// ProviderForModel infers the vendor from a model ID prefix.
func ProviderForModel(modelID string) (Provider, error) {
	id := strings.ToLower(strings.TrimSpace(modelID))
	switch {
	case strings.HasPrefix(id, "gpt"), strings.HasPrefix(id, "o1"), strings.HasPrefix(id, "o3"),
		strings.HasPrefix(id, "o4"), strings.HasPrefix(id, "chatgpt"):
		return ProviderOpenAI, nil
	case strings.HasPrefix(id, "claude"):
		return ProviderAnthropic, nil
	case strings.HasPrefix(id, "gemini"):
		return ProviderGemini, nil
	case strings.HasPrefix(id, "mistral"), strings.HasPrefix(id, "open-mistral"),
		strings.HasPrefix(id, "codestral"), strings.HasPrefix(id, "ministral"):
		return ProviderMistral, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, modelID)
}

// NewClientForModel builds the provider client that serves modelID.
func NewClientForModel(modelID, apiKey string) (Client, error) {
	provider, err := ProviderForModel(modelID)
	if err != nil {
		return nil, err
	}

	var client Client
	switch provider {
	case ProviderOpenAI:
		client, err = NewOpenAIClient(apiKey)
	case ProviderAnthropic:
		client, err = NewAnthropicClient(apiKey)
	case ProviderGemini:
		client, err = NewGeminiClient(apiKey)
	default:
		client, err = NewMistralClient(apiKey)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// splitSystem separates system instructions from the conversation turns, for
// providers that take the system prompt out of band.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	turns := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(system, "\n\n"), turns
}

// NewClients builds one client per provider and maps every model ID to it.
// Models whose provider has no API key are skipped with a warning.
func NewClients(modelIDs []string, apiKeys map[Provider]string) map[string]Client {
	byProvider := make(map[Provider]Client)
	clients := make(map[string]Client, len(modelIDs))
	for _, modelID := range modelIDs {
		provider, err := ProviderForModel(modelID)
		if err != nil {
			log.Warnf("⚠️ Skipping rewrite model: %v", err)
			continue
		}
		client, ok := byProvider[provider]
		if !ok {
			client, err = NewClientForModel(modelID, apiKeys[provider])
			if err != nil {
				log.Warnf("⚠️ Skipping rewrite model %s: %v", modelID, err)
				continue
			}
			byProvider[provider] = client
		}
		clients[modelID] = client
	}
	return clients
}
