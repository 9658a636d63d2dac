// In file: internal/api/api.go

// Package api defines the request and response envelopes of the HTTP boundary.
package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
	"github.com/dileep-u-k/prompt-optimizer/internal/version"
)

// DefaultMaxTextLength is the largest prompt accepted, in characters.
const DefaultMaxTextLength = 10000

var (
	ErrEmptyText   = errors.New("text must not be empty")
	ErrTextTooLong = errors.New("text is too long")
)

// OptimizeRequest is the body of POST /api/v1/optimize.
type OptimizeRequest struct {
	Text           string `json:"text"`
	RequestRewrite bool   `json:"requestRewrite,omitempty"`
}

// Validate checks the request against the boundary limits. A non-positive
// maxLen disables the length check.
func (r *OptimizeRequest) Validate(maxLen int) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if n := utf8.RuneCountInString(r.Text); maxLen > 0 && n > maxLen {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, maxLen)
	}
	return nil
}

// OptimizeResponse is the analysis result as served over HTTP.
type OptimizeResponse = analyzer.Result

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Redis   string `json:"redis"`
	Rewrite bool   `json:"rewrite"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version    string `json:"version"`
	BuildDate  string `json:"buildDate"`
	GitCommit  string `json:"gitCommit"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
	Components any    `json:"components"`
}

// NewVersionResponse fills in the component versions.
func NewVersionResponse(ver, buildDate, gitCommit, goVersion, platform string) VersionResponse {
	return VersionResponse{
		Version:    ver,
		BuildDate:  buildDate,
		GitCommit:  gitCommit,
		GoVersion:  goVersion,
		Platform:   platform,
		Components: version.ComponentVersions,
	}
}
