package model

import "time"

// Check names used in gate reports
const (
	CheckProvenance = "provenance"
	CheckNumbers    = "numbers"
	CheckLexicon    = "lexicon"
)

// GateReport is the merged outcome of a full gate run over one work
// product and its rendered content
type GateReport struct {
	ReportID    string    `json:"report_id"`
	Product     string    `json:"product,omitempty"`
	Content     string    `json:"content,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	Checks []CheckResult `json:"checks"`
	Passed bool          `json:"passed"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional remediation summary (never affects Passed)
}

// CheckResult is one validator's contribution to a gate report
type CheckResult struct {
	Name   string           `json:"name"`
	Result ValidationResult `json:"result"`
}

// ErrorCount sums error findings across all checks
func (r *GateReport) ErrorCount() int {
	n := 0
	for _, c := range r.Checks {
		n += len(c.Result.Errors)
	}
	return n
}

// WarningCount sums warning findings across all checks
func (r *GateReport) WarningCount() int {
	n := 0
	for _, c := range r.Checks {
		n += len(c.Result.Warnings)
	}
	return n
}

// Merged returns all checks folded into a single result
func (r *GateReport) Merged() ValidationResult {
	results := make([]ValidationResult, 0, len(r.Checks))
	for _, c := range r.Checks {
		results = append(results, c.Result)
	}
	return Combine(results...)
}

// LLMSummary contains the optional LLM-generated remediation summary.
// It is advisory output only and is kept clearly separated from findings.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
