package llm

import (
	"strings"
	"testing"

	"github.com/ppiankov/provgate/internal/model"
)

func TestBuildPrompt_IncludesFindings(t *testing.T) {
	report := model.GateReport{
		Product: "product.json",
		Passed:  false,
		Checks: []model.CheckResult{
			{Name: model.CheckNumbers, Result: model.NewValidationResult(
				[]string{"Unexpected numbers found (possible hallucination): 37"}, nil)},
			{Name: model.CheckLexicon, Result: model.NewValidationResult(
				nil, []string{"Sentence too long (30 words, max 22): The office..."})},
		},
	}

	prompt := BuildPrompt(report)

	for _, want := range []string{
		"product.json",
		"Passed: false",
		"Blocking findings: 1",
		"Advisory findings: 1",
		"- Unexpected numbers found (possible hallucination): 37",
		"- Sentence too long (30 words, max 22): The office...",
		"Do not introduce any number",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected %q in prompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_CapsFindingsList(t *testing.T) {
	var errors []string
	for i := 0; i < 25; i++ {
		errors = append(errors, "Forbidden term found: 'always'")
	}
	report := model.GateReport{
		Checks: []model.CheckResult{
			{Name: model.CheckLexicon, Result: model.NewValidationResult(errors, nil)},
		},
	}

	prompt := BuildPrompt(report)
	if !strings.Contains(prompt, "... and 5 more") {
		t.Errorf("Expected finding list to cap at 20, got:\n%s", prompt)
	}
}

func TestBuildPrompt_CleanReport(t *testing.T) {
	prompt := BuildPrompt(model.GateReport{Product: "p.json", Passed: true})
	if !strings.Contains(prompt, "(none)") {
		t.Errorf("Expected empty findings placeholder, got:\n%s", prompt)
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without API key")
	}
}

func TestNewProvider_OllamaNeedsNoKey(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider == nil || provider.Name() != "ollama" {
		t.Errorf("Expected ollama provider, got %v", provider)
	}
}

func TestNewProvider_CaseInsensitive(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "OpenAI", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider == nil || provider.Name() != "openai" {
		t.Errorf("Expected openai provider, got %v", provider)
	}
}

func TestNewSummarizer_NilWhenDisabled(t *testing.T) {
	summarizer, err := NewSummarizer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if summarizer != nil {
		t.Error("Expected nil summarizer when no provider is configured")
	}
}
