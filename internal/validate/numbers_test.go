package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/provgate/internal/model"
)

func defaultNumberPolicy() model.NumberPolicy {
	return model.DefaultConfig().Numbers
}

func feeRecord() *model.Record {
	return testRecord(
		"_metadata", map[string]any{"extraction_date": "2025-01-15", "model": "test", "extractor_version": "1.0"},
		"fee", 25,
	)
}

func TestNumbersValidator_MatchedNumbersPass(t *testing.T) {
	v := NewNumbersValidator(defaultNumberPolicy())

	result := v.Validate("The fee is 25 EUR.", feeRecord())
	if !result.Passed {
		t.Errorf("Expected matched number to pass, got %v", result.Errors)
	}
}

func TestNumbersValidator_HallucinatedNumberFails(t *testing.T) {
	v := NewNumbersValidator(defaultNumberPolicy())

	result := v.Validate("The fee is 25 EUR, but premium costs 150 EUR.", feeRecord())
	if result.Passed {
		t.Error("Expected unmatched number to fail")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected one aggregated error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0], "150") {
		t.Errorf("Expected error to cite 150, got %q", result.Errors[0])
	}
}

func TestNumbersValidator_YearExemption(t *testing.T) {
	text := "As of 2025, the fee is 25 EUR."

	v := NewNumbersValidator(defaultNumberPolicy())
	if result := v.Validate(text, feeRecord()); !result.Passed {
		t.Errorf("Expected year to be exempt by default, got %v", result.Errors)
	}

	policy := defaultNumberPolicy()
	policy.IgnoreYears = false
	v = NewNumbersValidator(policy)
	result := v.Validate(text, feeRecord())
	if result.Passed {
		t.Error("Expected year to fail with ignore_years=false")
	}
	if !strings.Contains(result.Errors[0], "2025") {
		t.Errorf("Expected error to cite 2025, got %q", result.Errors[0])
	}
}

func TestNumbersValidator_YearInSourceMatchesNormally(t *testing.T) {
	// A year-range number present in the source is matched, not
	// forgiven by the year filter.
	policy := defaultNumberPolicy()
	policy.IgnoreYears = false
	v := NewNumbersValidator(policy)

	rec := testRecord("established", 1995)
	if result := v.Validate("Founded in 1995.", rec); !result.Passed {
		t.Errorf("Expected source-backed year to pass, got %v", result.Errors)
	}
}

func TestNumbersValidator_SectionNumberExemption(t *testing.T) {
	text := "1. First step\n2. Second step\n\nThe fee is 25 EUR."

	v := NewNumbersValidator(defaultNumberPolicy())
	if result := v.Validate(text, feeRecord()); !result.Passed {
		t.Errorf("Expected section numbers to be exempt, got %v", result.Errors)
	}

	policy := defaultNumberPolicy()
	policy.IgnoreSectionNumbers = false
	v = NewNumbersValidator(policy)
	if result := v.Validate(text, feeRecord()); result.Passed {
		t.Error("Expected section numbers to fail with ignore_section_numbers=false")
	}
}

func TestNumbersValidator_SectionExemptionIsFileWide(t *testing.T) {
	// A numeral used once as a section marker is exempted everywhere in
	// the document, a deliberate simplification.
	v := NewNumbersValidator(defaultNumberPolicy())

	text := "2. Second step\n\nBring 2 copies."
	rec := testRecord("fee", 25)
	if result := v.Validate(text, rec); !result.Passed {
		t.Errorf("Expected file-wide exemption of '2', got %v", result.Errors)
	}
}

func TestNumbersValidator_AllowedNumbers(t *testing.T) {
	text := "The fee is 25 EUR. Processing takes 14 days."

	policy := defaultNumberPolicy()
	policy.AllowedNumbers = []string{"14"}
	v := NewNumbersValidator(policy)
	if result := v.Validate(text, feeRecord()); !result.Passed {
		t.Errorf("Expected allow-listed 14 to pass, got %v", result.Errors)
	}

	v = NewNumbersValidator(defaultNumberPolicy())
	result := v.Validate(text, feeRecord())
	if result.Passed {
		t.Error("Expected 14 to fail without the allow-list entry")
	}
	if !strings.Contains(result.Errors[0], "14") {
		t.Errorf("Expected error to cite 14, got %q", result.Errors[0])
	}
}

func TestNumbersValidator_AnySourceFieldMatches(t *testing.T) {
	// A content number matches regardless of which field carried it.
	v := NewNumbersValidator(defaultNumberPolicy())

	rec := testRecord(
		"fee", 25,
		"opening_hours", "Mon-Fri 8-16",
		"address", "Musterstrasse 12",
	)
	result := v.Validate("Open from 8 to 16 at Musterstrasse 12. Fee: 25 EUR.", rec)
	if !result.Passed {
		t.Errorf("Expected all numbers sourced, got %v", result.Errors)
	}
}

func TestNumbersValidator_MetadataValuesDoNotCount(t *testing.T) {
	v := NewNumbersValidator(defaultNumberPolicy())

	rec := testRecord(
		"_metadata", map[string]any{"extractor_version": "99"},
		"fee", 25,
	)
	result := v.Validate("Secret code 99.", rec)
	if result.Passed {
		t.Error("Expected metadata-only number to be flagged")
	}
}

func TestNumbersValidator_LexicographicTokenOrder(t *testing.T) {
	policy := defaultNumberPolicy()
	policy.IgnoreYears = false
	policy.IgnoreSectionNumbers = false
	v := NewNumbersValidator(policy)

	result := v.Validate("7 then 99 then 123", testRecord("name", "x"))
	if result.Passed {
		t.Fatal("Expected unmatched numbers to fail")
	}
	// Digit strings sort lexicographically, not numerically
	want := "Unexpected numbers found (possible hallucination): 123, 7, 99"
	if result.Errors[0] != want {
		t.Errorf("Expected %q, got %q", want, result.Errors[0])
	}
}

func TestNumbersValidator_LeadingZerosAreDistinct(t *testing.T) {
	v := NewNumbersValidator(defaultNumberPolicy())

	rec := testRecord("code", "007")
	result := v.Validate("Agent 007 reporting.", rec)
	if !result.Passed {
		t.Errorf("Expected exact token 007 to match, got %v", result.Errors)
	}

	rec = testRecord("code", 7)
	result = v.Validate("Agent 007 reporting.", rec)
	if result.Passed {
		t.Error("Expected 007 not to match source 7")
	}
}

func TestNumbersValidator_DecimalsTokenizeAsDigitRuns(t *testing.T) {
	// Both sides split "3.14" into "3" and "14", so a decimal fee the
	// source also renders as a float re-composes correctly.
	v := NewNumbersValidator(defaultNumberPolicy())

	rec := testRecord("rate", 3.14)
	if result := v.Validate("The rate is 3.14 percent.", rec); !result.Passed {
		t.Errorf("Expected decimal to re-compose, got %v", result.Errors)
	}
}

func TestNumbersValidator_Idempotent(t *testing.T) {
	v := NewNumbersValidator(defaultNumberPolicy())

	text := "Fees: 25, 150, and 999."
	first := v.Validate(text, feeRecord())
	second := v.Validate(text, feeRecord())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %v then %v", first, second)
	}
}
