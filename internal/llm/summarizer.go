package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ppiankov/provgate/internal/model"
)

// Summarizer wraps a provider with rate limiting so batch runs that
// summarize many reports do not hammer the API
type Summarizer struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewSummarizer creates a summarizer from configuration. Returns nil
// (and no error) when no provider is configured.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Summarizer{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		config:   config,
	}, nil
}

// Summarize generates a remediation summary for a gate report.
// The summary is advisory only; the report's Passed is never touched.
func (s *Summarizer) Summarize(ctx context.Context, report model.GateReport) (*model.LLMSummary, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
