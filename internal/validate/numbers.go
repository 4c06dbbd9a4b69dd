package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/provgate/internal/model"
)

var (
	digitRun      = regexp.MustCompile(`\d+`)
	sectionMarker = regexp.MustCompile(`^\s*(\d+)[.)\s]`)
)

// NumbersValidator cross-references every number in rendered content
// against the numbers derivable from its source work product. A number
// with no traceable origin is treated as a possible hallucination.
//
// Numbers are compared as exact digit strings: "007" and "7" are
// different tokens, and "3.14" contributes the two tokens "3" and "14".
type NumbersValidator struct {
	allowed              map[string]bool
	ignoreYears          bool
	ignoreSectionNumbers bool
}

// NewNumbersValidator creates a validator from the number policy
func NewNumbersValidator(policy model.NumberPolicy) *NumbersValidator {
	allowed := make(map[string]bool, len(policy.AllowedNumbers))
	for _, n := range policy.AllowedNumbers {
		allowed[n] = true
	}
	return &NumbersValidator{
		allowed:              allowed,
		ignoreYears:          policy.IgnoreYears,
		ignoreSectionNumbers: policy.IgnoreSectionNumbers,
	}
}

// Validate compares content numbers against the work product.
// Unmatched numbers produce a single aggregated error listing all tokens
// in lexicographic order.
func (v *NumbersValidator) Validate(content string, rec *model.Record) model.ValidationResult {
	contentNumbers := v.extractNumbers(content)
	sourceNumbers := extractSourceNumbers(rec)

	var unexpected []string
	for n := range contentNumbers {
		if sourceNumbers[n] || v.allowed[n] {
			continue
		}
		if v.ignoreYears && isYear(n) {
			continue
		}
		unexpected = append(unexpected, n)
	}

	var errors []string
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		errors = append(errors, fmt.Sprintf(
			"Unexpected numbers found (possible hallucination): %s",
			strings.Join(unexpected, ", ")))
	}

	return model.NewValidationResult(errors, nil)
}

// extractNumbers collects the maximal digit runs in text. When section
// numbering is ignored, a numeral leading a line (followed by '.', ')'
// or whitespace) is excluded from the whole set, not just on that line.
func (v *NumbersValidator) extractNumbers(text string) map[string]bool {
	numbers := make(map[string]bool)
	for _, n := range digitRun.FindAllString(text, -1) {
		numbers[n] = true
	}

	if v.ignoreSectionNumbers {
		for _, line := range strings.Split(text, "\n") {
			if m := sectionMarker.FindStringSubmatch(line); m != nil {
				delete(numbers, m[1])
			}
		}
	}

	return numbers
}

// extractSourceNumbers collects digit runs from every non-metadata,
// non-null value of the work product
func extractSourceNumbers(rec *model.Record) map[string]bool {
	numbers := make(map[string]bool)

	for _, key := range rec.Keys() {
		if strings.HasPrefix(key, model.MetadataPrefix) {
			continue
		}
		value, _ := rec.Get(key)
		if value == nil {
			continue
		}
		for _, n := range digitRun.FindAllString(model.Stringify(value), -1) {
			numbers[n] = true
		}
	}

	return numbers
}

func isYear(token string) bool {
	n, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	return n >= 1900 && n <= 2100
}
