// In file: internal/optimizer/optimizer.go

// Package optimizer combines the deterministic core analysis with an optional,
// best-effort rewrite from an external collaborator.
package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

// DefaultEnrichTimeout bounds a single enrichment attempt.
const DefaultEnrichTimeout = 30 * time.Second

// Enricher produces an improved prompt and extra suggestions for text. The
// core findings are passed along so the collaborator can target weaknesses.
type Enricher interface {
	Enrich(ctx context.Context, text string, findings *analyzer.Result) (*analyzer.Enrichment, error)
}

// Service runs the analyzer and, on request, one enrichment attempt.
type Service struct {
	enricher Enricher
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides DefaultEnrichTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a Service. A nil enricher disables rewrites entirely.
func NewService(enricher Enricher, opts ...Option) *Service {
	s := &Service{enricher: enricher, timeout: DefaultEnrichTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RewriteEnabled reports whether an enricher is configured.
func (s *Service) RewriteEnabled() bool {
	return s != nil && s.enricher != nil
}

// Analyze always returns the core analysis of text. When requestRewrite is set
// and an enricher is configured, it makes exactly one enrichment attempt under
// the service timeout; any failure is logged and the core result returned.
func (s *Service) Analyze(ctx context.Context, text string, requestRewrite bool) *analyzer.Result {
	result := analyzer.Analyze(text)
	if !requestRewrite || !s.RewriteEnabled() {
		return result
	}

	enrichment, err := s.enrich(ctx, text, result)
	if err != nil {
		log.Warn("⚠️ rewrite skipped", "err", err)
		return result
	}
	if enrichment.Empty() {
		log.Debug("rewrite returned nothing usable")
		return result
	}
	return result.WithEnrichment(enrichment)
}

func (s *Service) enrich(ctx context.Context, text string, findings *analyzer.Result) (*analyzer.Enrichment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		enrichment *analyzer.Enrichment
		err        error
	}
	// Buffered so a collaborator that ignores ctx can still finish and exit.
	done := make(chan outcome, 1)
	go func() {
		// A panicking collaborator must not take the process down with it.
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{nil, fmt.Errorf("rewrite panicked: %v", p)}
			}
		}()
		e, err := s.enricher.Enrich(ctx, text, findings)
		done <- outcome{e, err}
	}()

	select {
	case o := <-done:
		return o.enrichment, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
