// In file: internal/llm/constants.go
package llm

import (
	"errors"
	"time"
)

// This file centralizes constants and sentinel errors shared across the
// clients and services in the llm package.
const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 1024

	mistralBaseURL = "https://api.mistral.ai/v1"
)

var (
	// ErrUnknownProvider is returned when no client can serve a model ID.
	ErrUnknownProvider = errors.New("unknown model provider")
	// ErrNoModelAvailable is returned when every candidate model is filtered out.
	ErrNoModelAvailable = errors.New("no suitable, healthy and in-budget model available")
	// ErrEmptyRewrite is returned when a model answered but nothing usable could be parsed.
	ErrEmptyRewrite = errors.New("model returned no usable rewrite")
	// ErrEmptyResponse is returned when a provider returns no content at all.
	ErrEmptyResponse = errors.New("provider returned no content")
)
