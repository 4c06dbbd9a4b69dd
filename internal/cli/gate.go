package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/pipeline"
)

var (
	gateProduct string
	gateOutJSON string
	gateOutMD   string
	gateNoFoot  bool

	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// gateCmd represents the gate command
var gateCmd = &cobra.Command{
	Use:   "gate <content> --product <file>",
	Short: "Run the full readiness gate over content and its work product",
	Long: `Gate runs all three checks and merges their findings into one report:

- provenance: the work product carries its verification dates and sources
- numbers:    every number in the content traces to the work product
- lexicon:    the content avoids forbidden terms and patterns

The verdict is FAIL if any check produced an error finding; warnings
alone still pass. With --llm, an advisory remediation summary is added
to the report (it never affects the verdict).

Example:
  provgate gate guide.md --product permit.json
  provgate gate guide.md --product permit.json --json report.json --md report.md
  provgate gate guide.md --product permit.json --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runGate,
}

func init() {
	rootCmd.AddCommand(gateCmd)

	gateCmd.Flags().StringVar(&gateProduct, "product", "", "work product file (JSON or YAML)")
	_ = gateCmd.MarkFlagRequired("product")

	// Output flags
	gateCmd.Flags().StringVar(&gateOutJSON, "json", "", "output JSON report path (optional)")
	gateCmd.Flags().StringVar(&gateOutMD, "md", "", "output Markdown report path (optional)")
	gateCmd.Flags().BoolVar(&gateNoFoot, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	gateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM remediation summary")
	gateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	gateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runGate(cmd *cobra.Command, args []string) error {
	contentPath := args[0]
	if err := fileMustExist(contentPath); err != nil {
		return err
	}
	if err := fileMustExist(gateProduct); err != nil {
		return err
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !gateNoFoot

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		switch llmProvider {
		case "openai":
			if cfg.LLM.APIKey == "" {
				cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			}
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	gate, err := pipeline.NewGate(cfg, log)
	if err != nil {
		return err
	}

	rec, err := pipeline.LoadRecord(gateProduct)
	if err != nil {
		return err
	}
	content, err := pipeline.LoadContent(contentPath)
	if err != nil {
		return err
	}

	printValidating(contentPath)

	report, err := gate.Run(context.Background(), gateProduct, contentPath, rec, content)
	if err != nil {
		return err
	}

	printResult(report.Merged())

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if gateOutJSON != "" {
		if err := renderer.WriteJSON(report, gateOutJSON); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("\nJSON report: %s\n", gateOutJSON)
		}
	}
	if gateOutMD != "" {
		if err := renderer.WriteMarkdown(report, gateOutMD); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("Markdown report: %s\n", gateOutMD)
		}
	}

	if !report.Passed {
		return ErrValidationFailed
	}
	return nil
}
