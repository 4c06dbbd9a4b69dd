package validate

import (
	"strings"

	"github.com/ppiankov/provgate/internal/model"
)

// FieldClassifier partitions a work product's keys into fact fields and
// everything else (metadata, provenance companions, identity and
// non-fact fields)
type FieldClassifier struct {
	identity map[string]bool
	nonFact  map[string]bool
}

// NewFieldClassifier creates a classifier from the field policy
func NewFieldClassifier(policy model.FieldPolicy) *FieldClassifier {
	classifier := &FieldClassifier{
		identity: make(map[string]bool, len(policy.IdentityFields)),
		nonFact:  make(map[string]bool, len(policy.NonFactFields)),
	}
	for _, name := range policy.IdentityFields {
		classifier.identity[name] = true
	}
	for _, name := range policy.NonFactFields {
		classifier.nonFact[name] = true
	}
	return classifier
}

// FactFields returns the record's fact fields in document key order.
// A field is a fact field if it does not start with the metadata marker,
// does not end with a provenance companion suffix, and is excluded by
// neither identity_fields nor non_fact_fields.
func (c *FieldClassifier) FactFields(rec *model.Record) []string {
	var factFields []string

	for _, key := range rec.Keys() {
		if strings.HasPrefix(key, model.MetadataPrefix) {
			continue
		}
		if strings.HasSuffix(key, model.SourceSuffix) || strings.HasSuffix(key, model.VerifiedAtSuffix) {
			continue
		}
		if c.identity[key] {
			continue
		}
		if c.nonFact[key] {
			continue
		}
		factFields = append(factFields, key)
	}

	return factFields
}
