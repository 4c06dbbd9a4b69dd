// Package pipeline wires the validators into a complete gate run and
// renders the resulting reports.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ppiankov/provgate/internal/llm"
	"github.com/ppiankov/provgate/internal/model"
	"github.com/ppiankov/provgate/internal/validate"
)

// Gate runs the full readiness check over a work product and its
// rendered content: provenance, number cross-reference, and lexicon.
// The validators themselves are pure; the gate owns orchestration,
// report assembly, and the optional LLM summary.
type Gate struct {
	provenance *validate.ProvenanceValidator
	numbers    *validate.NumbersValidator
	lexicon    *validate.LexiconValidator
	summarizer *llm.Summarizer // nil if disabled
	log        zerolog.Logger
}

// NewGate builds a gate from a validated configuration
func NewGate(cfg *model.Config, logger zerolog.Logger) (*Gate, error) {
	provenance, err := validate.NewProvenanceValidator(cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("field policy: %w", err)
	}

	lexicon, err := validate.NewLexiconValidator(cfg.Lexicon, cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("lexicon rules: %w", err)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		summarizer, err = llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("llm: %w", err)
		}
	}

	return &Gate{
		provenance: provenance,
		numbers:    validate.NewNumbersValidator(cfg.Numbers),
		lexicon:    lexicon,
		summarizer: summarizer,
		log:        logger,
	}, nil
}

// Run executes every applicable check and merges the outcomes into one
// report. The record may be nil (content-only run) and the content may
// be empty (product-only run); checks that lack their inputs are
// skipped, not failed.
func (g *Gate) Run(ctx context.Context, productPath, contentPath string, rec *model.Record, content string) (*model.GateReport, error) {
	report := &model.GateReport{
		ReportID:    uuid.NewString(),
		Product:     productPath,
		Content:     contentPath,
		GeneratedAt: time.Now().UTC(),
	}

	if rec != nil {
		result := g.provenance.Validate(rec)
		report.Checks = append(report.Checks, model.CheckResult{Name: model.CheckProvenance, Result: result})
		g.log.Debug().Str("check", model.CheckProvenance).
			Int("errors", len(result.Errors)).Int("warnings", len(result.Warnings)).
			Msg("check complete")
	}

	if rec != nil && content != "" {
		result := g.numbers.Validate(content, rec)
		report.Checks = append(report.Checks, model.CheckResult{Name: model.CheckNumbers, Result: result})
		g.log.Debug().Str("check", model.CheckNumbers).
			Int("errors", len(result.Errors)).Int("warnings", len(result.Warnings)).
			Msg("check complete")
	}

	if content != "" {
		result := g.lexicon.Validate(content)
		report.Checks = append(report.Checks, model.CheckResult{Name: model.CheckLexicon, Result: result})
		g.log.Debug().Str("check", model.CheckLexicon).
			Int("errors", len(result.Errors)).Int("warnings", len(result.Warnings)).
			Msg("check complete")
	}

	report.Passed = report.ErrorCount() == 0

	if g.summarizer != nil {
		summary, err := g.summarizer.Summarize(ctx, *report)
		if err != nil {
			// The summary is advisory; a failed API call never blocks the gate
			g.log.Warn().Err(err).Msg("LLM summary failed")
		} else {
			report.LLM = summary
		}
	}

	return report, nil
}
