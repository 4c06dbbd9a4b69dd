package validate

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ppiankov/provgate/internal/model"
)

// Prompt telemetry records describe which prompt produced a work product
// and how the generation went. They ride along with the product through
// the authoring pipeline and are validated here against the same
// pass/fail contract as the gate checks.

var (
	promptHashFormat    = regexp.MustCompile(`^[a-f0-9]{12}$`)
	promptVersionFormat = regexp.MustCompile(`^[a-z]+-[a-z]+-v[0-9]+\.[0-9]+$`)
)

var telemetryPromptTypes = []string{"cluster", "bezirk", "overview", "supplier", "blog"}

// ValidatePromptHash reports whether a value is a well-formed prompt
// hash (12 lowercase hex chars)
func ValidatePromptHash(hash string) bool {
	return promptHashFormat.MatchString(hash)
}

// ValidatePromptVersion reports whether a value matches the
// {type}-{city}-v{major}.{minor} convention
func ValidatePromptVersion(version string) bool {
	return promptVersionFormat.MatchString(version)
}

// ValidateTelemetryRecord validates a prompt telemetry record
func ValidateTelemetryRecord(record map[string]any) model.ValidationResult {
	var errors, warnings []string

	for _, field := range []string{"document_id", "prompt_type", "prompt_version", "prompt_hash"} {
		if value, ok := record[field]; !ok || model.IsEmptyValue(value) {
			errors = append(errors, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if hash := stringField(record, "prompt_hash"); hash != "" && !ValidatePromptHash(hash) {
		errors = append(errors, fmt.Sprintf("Invalid prompt_hash format: %s (expected 12 hex chars)", hash))
	}

	if version := stringField(record, "prompt_version"); version != "" && !ValidatePromptVersion(version) {
		warnings = append(warnings, fmt.Sprintf("Non-standard prompt_version format: %s", version))
	}

	if promptType := stringField(record, "prompt_type"); promptType != "" && !isKnownPromptType(promptType) {
		errors = append(errors, fmt.Sprintf("Invalid prompt_type: %s (expected one of %v)", promptType, telemetryPromptTypes))
	}

	for _, field := range []string{"validator_score", "pipeline_efficiency", "post_gen_edit_score", "composite_score"} {
		if value, ok := record[field]; ok && value != nil {
			if msg := checkScore(value, field); msg != "" {
				errors = append(errors, msg)
			}
		}
	}

	if value, ok := record["attempts_to_acceptance"]; ok && value != nil {
		if n, isInt := intValue(value); !isInt || n < 1 {
			errors = append(errors, fmt.Sprintf("attempts_to_acceptance must be a positive integer (got %s)", model.Stringify(value)))
		}
	}

	if value, ok := record["post_gen_edit_count"]; ok && value != nil {
		if n, isInt := intValue(value); !isInt || n < 0 {
			errors = append(errors, fmt.Sprintf("post_gen_edit_count must be a non-negative integer (got %s)", model.Stringify(value)))
		}
	}

	if _, ok := record["validator_score"]; !ok {
		warnings = append(warnings, "Missing validator_score - quality metrics will be incomplete")
	}
	if _, ok := record["attempts_to_acceptance"]; !ok {
		warnings = append(warnings, "Missing attempts_to_acceptance - pipeline efficiency unknown")
	}

	return model.NewValidationResult(errors, warnings)
}

// ValidateGenerationAttempt validates a single generation attempt record
func ValidateGenerationAttempt(attempt map[string]any) model.ValidationResult {
	var errors, warnings []string

	required := []string{"session_id", "prompt_type", "prompt_version", "prompt_hash", "attempt_number", "outcome", "generated_at"}
	for _, field := range required {
		if value, ok := attempt[field]; !ok || value == nil {
			errors = append(errors, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	outcome := stringField(attempt, "outcome")
	if outcome != "" && outcome != "accepted" && outcome != "rejected" {
		errors = append(errors, fmt.Sprintf("Invalid outcome: %s (expected 'accepted' or 'rejected')", outcome))
	}

	if value, ok := attempt["attempt_number"]; ok && value != nil {
		if n, isInt := intValue(value); !isInt || n < 1 {
			errors = append(errors, fmt.Sprintf("attempt_number must be a positive integer (got %s)", model.Stringify(value)))
		}
	}

	if hash := stringField(attempt, "prompt_hash"); hash != "" && !ValidatePromptHash(hash) {
		errors = append(errors, fmt.Sprintf("Invalid prompt_hash format: %s", hash))
	}

	if outcome == "rejected" && model.IsEmptyValue(attempt["rejection_reason"]) {
		warnings = append(warnings, "Rejected attempt without rejection_reason")
	}

	return model.NewValidationResult(errors, warnings)
}

// checkScore validates a 0-100 score value, returning an error message
// or the empty string
func checkScore(value any, field string) string {
	f, ok := floatValue(value)
	if !ok {
		return fmt.Sprintf("%s must be a number", field)
	}
	if f < 0 || f > 100 {
		return fmt.Sprintf("%s must be between 0 and 100 (got %s)", field, model.Stringify(value))
	}
	return ""
}

func isKnownPromptType(promptType string) bool {
	for _, t := range telemetryPromptTypes {
		if promptType == t {
			return true
		}
	}
	return false
}

func stringField(record map[string]any, field string) string {
	if s, ok := record[field].(string); ok {
		return s
	}
	return ""
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func intValue(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}
