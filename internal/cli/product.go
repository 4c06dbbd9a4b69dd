package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/pipeline"
	"github.com/ppiankov/provgate/internal/validate"
)

// productCmd represents the product command
var productCmd = &cobra.Command{
	Use:   "product <file>",
	Short: "Validate a work product for required provenance",
	Long: `Validate checks that a work product carries the provenance a fact
field needs before its claims may be republished:

- a _metadata block with extraction_date, model, extractor_version
- a *_verified_at companion (YYYY-MM-DD) for every fact field
- a *_source companion, with a non-empty value per policy

Example:
  provgate product permit.json
  provgate product permit.yaml --config policy.yaml -q`,
	Args: cobra.ExactArgs(1),
	RunE: runProduct,
}

func init() {
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := fileMustExist(path); err != nil {
		return err
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}

	validator, err := validate.NewProvenanceValidator(cfg.Fields)
	if err != nil {
		return err
	}

	rec, err := pipeline.LoadRecord(path)
	if err != nil {
		return err
	}

	printValidating(path)

	result := validator.Validate(rec)
	printResult(result)

	if !result.Passed {
		return ErrValidationFailed
	}
	return nil
}
