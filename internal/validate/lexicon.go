package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/provgate/internal/model"
)

const (
	// Individual long-sentence warnings stop after this many; the rest
	// collapse into one summary so a pathological document cannot flood
	// the findings list.
	maxLongSentenceReports = 3

	excerptRunes = 60
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// LexiconValidator scans free text against the stop rules: forbidden
// terms and verbs, forbidden regex patterns, and sentence length limits.
// Term and pattern matches are errors; long sentences are warnings.
type LexiconValidator struct {
	maxSentenceWords int
	maxFactTokens    int

	terms        []string
	termMatchers []*regexp.Regexp

	patternSources []string
	patterns       []*regexp.Regexp
}

// NewLexiconValidator compiles the lexicon rules. An uncompilable
// forbidden pattern is a construction-time error.
func NewLexiconValidator(rules model.LexiconRules, thresholds model.Thresholds) (*LexiconValidator, error) {
	v := &LexiconValidator{
		maxSentenceWords: thresholds.MaxSentenceWords,
		maxFactTokens:    thresholds.MaxFactTokens,
	}

	// Verbs and terms share matching semantics; a term configured in both
	// lists still reports once.
	seen := make(map[string]bool)
	for _, term := range append(append([]string{}, rules.ForbiddenVerbs...), rules.ForbiddenTerms...) {
		folded := strings.ToLower(term)
		if term == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		v.terms = append(v.terms, term)
		// \b is ASCII-only in Go regexp; spell the word boundaries out
		// over Unicode letters and digits so umlaut terms match.
		v.termMatchers = append(v.termMatchers, regexp.MustCompile(
			`(?i)(?:\A|[^\p{L}\p{N}_])`+regexp.QuoteMeta(folded)+`(?:[^\p{L}\p{N}_]|\z)`))
	}

	for _, source := range rules.ForbiddenPatterns {
		re, err := regexp.Compile("(?i)" + source)
		if err != nil {
			return nil, fmt.Errorf("forbidden pattern %q: %w", source, err)
		}
		v.patternSources = append(v.patternSources, source)
		v.patterns = append(v.patterns, re)
	}

	return v, nil
}

// Validate checks one text against the lexicon rules
func (v *LexiconValidator) Validate(text string) model.ValidationResult {
	var errors []string
	errors = append(errors, v.checkForbiddenTerms(text)...)
	errors = append(errors, v.checkForbiddenPatterns(text)...)

	warnings := v.checkSentenceLength(text)

	return model.NewValidationResult(errors, warnings)
}

// checkForbiddenTerms reports each configured term found anywhere in the
// text as a whole word, once per term regardless of occurrence count
func (v *LexiconValidator) checkForbiddenTerms(text string) []string {
	var errors []string
	for i, matcher := range v.termMatchers {
		if matcher.MatchString(text) {
			errors = append(errors, fmt.Sprintf("Forbidden term found: '%s'", v.terms[i]))
		}
	}
	return errors
}

func (v *LexiconValidator) checkForbiddenPatterns(text string) []string {
	var errors []string
	for i, re := range v.patterns {
		if re.MatchString(text) {
			errors = append(errors, fmt.Sprintf("Forbidden pattern found: '%s'", v.patternSources[i]))
		}
	}
	return errors
}

// checkSentenceLength warns on sentences exceeding the word limit,
// reporting the first few individually and summarizing the rest
func (v *LexiconValidator) checkSentenceLength(text string) []string {
	var warnings []string

	longCount := 0
	for _, sentence := range sentenceBoundary.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		words := strings.Fields(sentence)
		if len(words) <= v.maxSentenceWords {
			continue
		}

		longCount++
		if longCount <= maxLongSentenceReports {
			warnings = append(warnings, fmt.Sprintf(
				"Sentence too long (%d words, max %d): %s...",
				len(words), v.maxSentenceWords, truncateRunes(sentence, excerptRunes)))
		}
	}

	if longCount > maxLongSentenceReports {
		warnings = append(warnings, fmt.Sprintf(
			"Total: %d sentences exceed %d words", longCount, v.maxSentenceWords))
	}

	return warnings
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
