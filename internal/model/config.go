package model

import (
	"fmt"
	"regexp"
)

// RequireSource controls when a fact field's source companion must carry
// a non-empty value
type RequireSource string

const (
	RequireSourceNone        RequireSource = "none"
	RequireSourceAll         RequireSource = "all"
	RequireSourceNumbersOnly RequireSource = "numbers_only"
)

// ParseRequireSource converts a configuration string into a RequireSource
func ParseRequireSource(s string) (RequireSource, bool) {
	switch RequireSource(s) {
	case RequireSourceNone, RequireSourceAll, RequireSourceNumbersOnly:
		return RequireSource(s), true
	}
	return "", false
}

// Config is the complete resolved gate policy plus tool settings.
// It is built once (defaults, then config file, then flags) and treated
// as immutable afterwards; validators never read ambient state.
type Config struct {
	Thresholds  Thresholds        `yaml:"thresholds"`
	Lexicon     LexiconRules      `yaml:"lexicon_rules"`
	Fields      FieldPolicy       `yaml:"field_policy"`
	Numbers     NumberPolicy      `yaml:"number_policy"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// Thresholds holds the numeric style limits
type Thresholds struct {
	MaxSentenceWords int `yaml:"max_sentence_words"`
	MaxFactTokens    int `yaml:"max_fact_tokens"`
}

// LexiconRules lists the banned phrasing
type LexiconRules struct {
	ForbiddenVerbs    []string `yaml:"forbidden_verbs"`
	ForbiddenTerms    []string `yaml:"forbidden_terms"`
	ForbiddenPatterns []string `yaml:"forbidden_patterns"`
}

// FieldPolicy controls which fields count as facts and how hard missing
// provenance hits
type FieldPolicy struct {
	IdentityFields            []string `yaml:"identity_fields"`
	NonFactFields             []string `yaml:"non_fact_fields"`
	RequireSource             string   `yaml:"require_source"`
	SourceExceptions          []string `yaml:"source_exceptions"`
	MissingSourceSeverity     string   `yaml:"missing_source_severity"`
	MissingVerifiedAtSeverity string   `yaml:"missing_verified_at_severity"`
}

// NumberPolicy controls the anti-hallucination number cross-reference
type NumberPolicy struct {
	AllowedNumbers       []string `yaml:"allowed_numbers"`
	IgnoreYears          bool     `yaml:"ignore_years"`
	IgnoreSectionNumbers bool     `yaml:"ignore_section_numbers"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	GateWorkers int `yaml:"gate_workers"`
}

// CacheConfig controls the parse cache used in batch runs
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
}

// LLMConfig configures the optional remediation summary.
// The summary never affects pass/fail.
type LLMConfig struct {
	Provider          string  `yaml:"provider"`
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	Timeout           int     `yaml:"timeout"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	HTTPProxy         string  `yaml:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy"`
	NoProxy           string  `yaml:"no_proxy"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	Quiet         bool `yaml:"quiet"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Thresholds: Thresholds{
			MaxSentenceWords: 22,
			MaxFactTokens:    18,
		},
		Lexicon: LexiconRules{
			ForbiddenVerbs:    []string{},
			ForbiddenTerms:    []string{},
			ForbiddenPatterns: []string{},
		},
		Fields: FieldPolicy{
			IdentityFields:            []string{},
			NonFactFields:             []string{"notes"},
			RequireSource:             string(RequireSourceNumbersOnly),
			SourceExceptions:          []string{},
			MissingSourceSeverity:     string(SeverityWarning),
			MissingVerifiedAtSeverity: string(SeverityError),
		},
		Numbers: NumberPolicy{
			AllowedNumbers:       []string{},
			IgnoreYears:          true,
			IgnoreSectionNumbers: true,
		},
		Concurrency: ConcurrencyConfig{
			GateWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 30,
		},
		LLM: LLMConfig{
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate rejects malformed policy before any validator is built:
// unknown severities or source modes and uncompilable forbidden patterns
// are load-time errors, never silently ignored string compares.
func (c *Config) Validate() error {
	if c.Thresholds.MaxSentenceWords <= 0 {
		return fmt.Errorf("thresholds.max_sentence_words must be positive, got %d", c.Thresholds.MaxSentenceWords)
	}
	if c.Thresholds.MaxFactTokens <= 0 {
		return fmt.Errorf("thresholds.max_fact_tokens must be positive, got %d", c.Thresholds.MaxFactTokens)
	}

	if _, ok := ParseRequireSource(c.Fields.RequireSource); !ok {
		return fmt.Errorf("field_policy.require_source: unknown mode %q (supported: none, all, numbers_only)", c.Fields.RequireSource)
	}
	if _, ok := ParseSeverity(c.Fields.MissingSourceSeverity); !ok {
		return fmt.Errorf("field_policy.missing_source_severity: unknown severity %q", c.Fields.MissingSourceSeverity)
	}
	if _, ok := ParseSeverity(c.Fields.MissingVerifiedAtSeverity); !ok {
		return fmt.Errorf("field_policy.missing_verified_at_severity: unknown severity %q", c.Fields.MissingVerifiedAtSeverity)
	}

	for _, pattern := range c.Lexicon.ForbiddenPatterns {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			return fmt.Errorf("lexicon_rules.forbidden_patterns: %q does not compile: %w", pattern, err)
		}
	}

	return nil
}
