package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/pipeline"
	"github.com/ppiankov/provgate/internal/validate"
)

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text <file>",
	Short: "Validate text content against lexicon rules",
	Long: `Text checks free text against the configured stop rules: forbidden
terms and verbs, forbidden regex patterns, and sentence length limits.
HTML inputs are reduced to their visible text first.

Example:
  provgate text guide.md
  provgate text guide.html --config policy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := fileMustExist(path); err != nil {
		return err
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}

	validator, err := validate.NewLexiconValidator(cfg.Lexicon, cfg.Thresholds)
	if err != nil {
		return err
	}

	content, err := pipeline.LoadContent(path)
	if err != nil {
		return err
	}

	printValidating(path)

	result := validator.Validate(content)
	printResult(result)

	if !result.Passed {
		return ErrValidationFailed
	}
	return nil
}
