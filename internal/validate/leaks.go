package validate

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ppiankov/provgate/internal/model"
)

// LeakScanner checks repository files for accidental inclusion of real
// data: real authority domains, non-example email addresses, and real
// phone number formats. Fixtures and documentation are expected to use
// only invented values.
type LeakScanner struct {
	patterns []leakPattern
	allow    []*regexp.Regexp
}

type leakPattern struct {
	re          *regexp.Regexp
	description string
}

// Lines containing these phrases document what NOT to do and are skipped
var leakDocContext = []string{
	"DO NOT",
	"do not",
	"Real (",
	"# Blocked",
	"# Real",
	"should NOT",
	"reject",
	"Reject",
	"BLOCKED",
}

// NewLeakScanner creates a scanner with the standard real-data patterns
func NewLeakScanner() *LeakScanner {
	return &LeakScanner{
		patterns: []leakPattern{
			{regexp.MustCompile(`\.berlin\.de\b`), "Real Berlin domain"},
			{regexp.MustCompile(`\.bund\.de\b`), "Real German federal domain"},
			{regexp.MustCompile(`\.gov\b([^/]|$)`), "Real government domain"},
			{regexp.MustCompile(`ba-[a-z]+\.berlin\.de`), "Real Berlin district domain"},
			{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), "Real email address"},
			{regexp.MustCompile(`\+49\s*\d`), "German phone number (+49)"},
			{regexp.MustCompile(`\(0\d{2,4}\)\s*\d`), "German phone number format"},
			{regexp.MustCompile(`030[\s-]?\d{3,}`), "Berlin phone number (030)"},
		},
		allow: []*regexp.Regexp{
			regexp.MustCompile(`(?i)example\.gov`),
			regexp.MustCompile(`(?i)example\.com`),
			regexp.MustCompile(`(?i)example\.org`),
			regexp.MustCompile(`(?i)@example\.`),
			regexp.MustCompile(`\+1-555-`),
		},
	}
}

// Scan checks one file's content line by line. Each leak is an error
// naming the file, line number, and what kind of real data matched.
func (s *LeakScanner) Scan(name string, r io.Reader) (model.ValidationResult, error) {
	var errors []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if s.shouldSkipLine(line) {
			continue
		}

		for _, p := range s.patterns {
			if p.re.MatchString(line) {
				errors = append(errors, fmt.Sprintf("%s:%d: %s", name, lineNo, p.description))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return model.ValidationResult{}, fmt.Errorf("scan %s: %w", name, err)
	}

	return model.NewValidationResult(errors, nil), nil
}

// shouldSkipLine suppresses false positives: allowed example values and
// lines documenting blocked patterns
func (s *LeakScanner) shouldSkipLine(line string) bool {
	for _, re := range s.allow {
		if re.MatchString(line) {
			return true
		}
	}
	for _, phrase := range leakDocContext {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}
