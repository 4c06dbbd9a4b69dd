package validate

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/provgate/internal/model"
)

// verifiedAtFormat is the only accepted verification-date form.
// ISO-8601 with a time component is deliberately rejected.
var verifiedAtFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ProvenanceValidator checks that a work product carries the required
// provenance: a metadata block with extraction info, a *_verified_at
// companion for every fact field, and a *_source companion per policy.
type ProvenanceValidator struct {
	classifier                *FieldClassifier
	requireSource             model.RequireSource
	sourceExceptions          map[string]bool
	missingSourceSeverity     model.Severity
	missingVerifiedAtSeverity model.Severity
}

// NewProvenanceValidator builds a validator from the field policy.
// Unknown policy strings are construction-time errors.
func NewProvenanceValidator(policy model.FieldPolicy) (*ProvenanceValidator, error) {
	requireSource, ok := model.ParseRequireSource(policy.RequireSource)
	if !ok {
		return nil, fmt.Errorf("require_source: unknown mode %q", policy.RequireSource)
	}
	sourceSeverity, ok := model.ParseSeverity(policy.MissingSourceSeverity)
	if !ok {
		return nil, fmt.Errorf("missing_source_severity: unknown severity %q", policy.MissingSourceSeverity)
	}
	verifiedAtSeverity, ok := model.ParseSeverity(policy.MissingVerifiedAtSeverity)
	if !ok {
		return nil, fmt.Errorf("missing_verified_at_severity: unknown severity %q", policy.MissingVerifiedAtSeverity)
	}

	exceptions := make(map[string]bool, len(policy.SourceExceptions))
	for _, name := range policy.SourceExceptions {
		exceptions[name] = true
	}

	return &ProvenanceValidator{
		classifier:                NewFieldClassifier(policy),
		requireSource:             requireSource,
		sourceExceptions:          exceptions,
		missingSourceSeverity:     sourceSeverity,
		missingVerifiedAtSeverity: verifiedAtSeverity,
	}, nil
}

// Validate checks one work product. Malformed provenance is reported as
// findings, never as an error return.
func (v *ProvenanceValidator) Validate(rec *model.Record) model.ValidationResult {
	var errors, warnings []string

	errors = append(errors, v.checkMetadata(rec)...)

	for _, field := range v.classifier.FactFields(rec) {
		fieldErrors, fieldWarnings := v.checkFieldProvenance(rec, field)
		errors = append(errors, fieldErrors...)
		warnings = append(warnings, fieldWarnings...)
	}

	return model.NewValidationResult(errors, warnings)
}

// checkMetadata verifies the reserved metadata block and its required fields
func (v *ProvenanceValidator) checkMetadata(rec *model.Record) []string {
	var errors []string

	if !rec.Has(model.MetadataKey) {
		return []string{fmt.Sprintf("Missing %s block", model.MetadataKey)}
	}

	metadata, ok := rec.Metadata()
	if !ok {
		return []string{fmt.Sprintf("%s block is not a mapping", model.MetadataKey)}
	}

	for _, field := range model.RequiredMetadataFields {
		value, present := metadata[field]
		if !present {
			errors = append(errors, fmt.Sprintf("Missing metadata field: %s", field))
		} else if model.IsEmptyValue(value) {
			errors = append(errors, fmt.Sprintf("Empty metadata field: %s", field))
		}
	}

	return errors
}

// checkFieldProvenance runs the two independent companion checks for one
// fact field. The key-exists check carries the configured severity; a
// present-but-malformed verification date is always a hard error.
func (v *ProvenanceValidator) checkFieldProvenance(rec *model.Record, field string) (errors, warnings []string) {
	value, _ := rec.Get(field)
	verifiedAtKey := field + model.VerifiedAtSuffix
	sourceKey := field + model.SourceSuffix

	if !rec.Has(verifiedAtKey) {
		msg := fmt.Sprintf("Field '%s' missing verification date (%s)", field, verifiedAtKey)
		if v.missingVerifiedAtSeverity == model.SeverityError {
			errors = append(errors, msg)
		} else {
			warnings = append(warnings, msg)
		}
	} else {
		verifiedAt, _ := rec.Get(verifiedAtKey)
		if !model.IsEmptyValue(verifiedAt) && !isValidDate(verifiedAt) {
			errors = append(errors, fmt.Sprintf(
				"Field '%s' has invalid date format: %s (expected YYYY-MM-DD)",
				field, model.Stringify(verifiedAt)))
		}
	}

	if !rec.Has(sourceKey) {
		msg := fmt.Sprintf("Field '%s' missing source key (%s)", field, sourceKey)
		if v.missingSourceSeverity == model.SeverityError {
			errors = append(errors, msg)
		} else {
			warnings = append(warnings, msg)
		}
	} else if v.requiresSourceValue(field, value) {
		source, _ := rec.Get(sourceKey)
		if model.IsEmptyValue(source) {
			msg := fmt.Sprintf("Field '%s' requires non-empty source", field)
			if v.missingSourceSeverity == model.SeverityError {
				errors = append(errors, msg)
			} else {
				warnings = append(warnings, msg)
			}
		}
	}

	return errors, warnings
}

// requiresSourceValue decides whether the source companion must carry a
// non-empty value for this field
func (v *ProvenanceValidator) requiresSourceValue(field string, value any) bool {
	if v.sourceExceptions[field] {
		return false
	}

	switch v.requireSource {
	case model.RequireSourceAll:
		return true
	case model.RequireSourceNumbersOnly:
		return model.IsNumber(value)
	default:
		return false
	}
}

func isValidDate(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return verifiedAtFormat.MatchString(s)
}
