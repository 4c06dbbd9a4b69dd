package model

// Severity indicates whether a finding blocks the gate or merely advises
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseSeverity converts a configuration string into a Severity.
// Unknown values are rejected so a typo in a policy file fails at load
// time instead of being silently treated as a warning.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityError:
		return SeverityError, true
	case SeverityWarning:
		return SeverityWarning, true
	}
	return "", false
}

// Finding is a single severity-tagged observation from a validator
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ValidationResult is the outcome of one validator call.
// It is constructed fresh per call and never mutated after being returned;
// callers that want a combined view should use Combine.
type ValidationResult struct {
	Passed   bool     `json:"passed"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult builds a result from collected findings.
// Passed is true iff there are no error-severity findings.
func NewValidationResult(errors, warnings []string) ValidationResult {
	if errors == nil {
		errors = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		Passed:   len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// Findings returns the result's contents as severity-tagged findings,
// errors first, preserving order within each severity.
func (r ValidationResult) Findings() []Finding {
	findings := make([]Finding, 0, len(r.Errors)+len(r.Warnings))
	for _, msg := range r.Errors {
		findings = append(findings, Finding{Severity: SeverityError, Message: msg})
	}
	for _, msg := range r.Warnings {
		findings = append(findings, Finding{Severity: SeverityWarning, Message: msg})
	}
	return findings
}

// Combine concatenates results into a fresh one without touching the inputs
func Combine(results ...ValidationResult) ValidationResult {
	var errors, warnings []string
	for _, r := range results {
		errors = append(errors, r.Errors...)
		warnings = append(warnings, r.Warnings...)
	}
	return NewValidationResult(errors, warnings)
}
