package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/provgate/internal/model"
)

// Renderer writes gate reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes the report as indented JSON
func (r *Renderer) WriteJSON(report *model.GateReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteMarkdown writes the report as a Markdown document
func (r *Renderer) WriteMarkdown(report *model.GateReport, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the report as Markdown
func (r *Renderer) Markdown(report *model.GateReport) string {
	var b strings.Builder

	b.WriteString("# Readiness Gate Report\n\n")
	fmt.Fprintf(&b, "- Report: `%s`\n", report.ReportID)
	if report.Product != "" {
		fmt.Fprintf(&b, "- Work product: `%s`\n", report.Product)
	}
	if report.Content != "" {
		fmt.Fprintf(&b, "- Content: `%s`\n", report.Content)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if report.Passed {
		b.WriteString("- Verdict: **PASSED**\n\n")
	} else {
		b.WriteString("- Verdict: **FAILED**\n\n")
	}

	for _, check := range report.Checks {
		fmt.Fprintf(&b, "## %s\n\n", check.Name)

		if len(check.Result.Errors) == 0 && len(check.Result.Warnings) == 0 {
			b.WriteString("No findings.\n\n")
			continue
		}

		if len(check.Result.Errors) > 0 {
			b.WriteString("Errors:\n\n")
			for _, msg := range check.Result.Errors {
				fmt.Fprintf(&b, "- %s\n", msg)
			}
			b.WriteString("\n")
		}
		if len(check.Result.Warnings) > 0 {
			b.WriteString("Warnings:\n\n")
			for _, msg := range check.Result.Warnings {
				fmt.Fprintf(&b, "- %s\n", msg)
			}
			b.WriteString("\n")
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		b.WriteString("## Remediation summary\n\n")
		fmt.Fprintf(&b, "_Generated by %s/%s. Advisory only; does not affect the verdict._\n\n", report.LLM.Provider, report.LLM.Model)
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by provgate. The gate checks traceability, not truth.\n")
	}

	return b.String()
}
