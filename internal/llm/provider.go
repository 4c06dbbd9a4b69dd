package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/provgate/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a remediation summary of a gate report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the gate report to summarize
	Report model.GateReport

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond caps call rate in batch runs
	RequestsPerSecond float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Timeout:           30,
		MaxTokens:         1000,
		RequestsPerSecond: 1,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:          modelConfig.Provider,
		Model:             modelConfig.Model,
		APIKey:            modelConfig.APIKey,
		BaseURL:           modelConfig.BaseURL,
		Timeout:           modelConfig.Timeout,
		MaxTokens:         modelConfig.MaxTokens,
		RequestsPerSecond: modelConfig.RequestsPerSecond,
		HTTPProxy:         modelConfig.HTTPProxy,
		HTTPSProxy:        modelConfig.HTTPSProxy,
		NoProxy:           modelConfig.NoProxy,
	}
}

// BuildPrompt constructs the default remediation prompt. The model is
// asked to explain the findings it is given and nothing else - it must
// not introduce facts, numbers, or sources of its own.
func BuildPrompt(report model.GateReport) string {
	merged := report.Merged()

	prompt := fmt.Sprintf(`You are summarizing the findings of a provenance gate run over a machine-generated document. The gate checks provenance companions, number traceability, and banned phrasing - it never asserts what is true.

CRITICAL RULES:
1. Discuss ONLY the findings listed below. Do not speculate about the document's content.
2. Do not introduce any number, date, source, or fact that does not appear in the findings.
3. For each class of finding, say what an author would change to clear it.
4. Blocking findings come first; advisory ones after.

Run summary:
- Work product: %s
- Passed: %t
- Blocking findings: %d
- Advisory findings: %d

Blocking findings:
%s
Advisory findings:
%s
Provide a 3-5 sentence remediation summary for the document's author.`,
		report.Product, report.Passed, len(merged.Errors), len(merged.Warnings),
		joinFindings(merged.Errors), joinFindings(merged.Warnings))

	return prompt
}

// Helper functions

func joinFindings(findings []string) string {
	if len(findings) == 0 {
		return "(none)\n"
	}
	result := ""
	for i, finding := range findings {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("... and %d more\n", len(findings)-20)
			break
		}
		result += fmt.Sprintf("- %s\n", finding)
	}
	return result
}
