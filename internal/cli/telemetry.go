package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/model"
	"github.com/ppiankov/provgate/internal/validate"
)

var telemetryAttempt bool

// telemetryCmd represents the telemetry command
var telemetryCmd = &cobra.Command{
	Use:   "telemetry <file>",
	Short: "Validate a prompt telemetry record",
	Long: `Telemetry validates the record describing which prompt produced a
work product: required identifiers, prompt hash and version formats,
score bounds, and attempt counters. With --attempt the file is treated
as a single generation attempt record instead.

Example:
  provgate telemetry telemetry.json
  provgate telemetry attempt.json --attempt`,
	Args: cobra.ExactArgs(1),
	RunE: runTelemetry,
}

func init() {
	rootCmd.AddCommand(telemetryCmd)

	telemetryCmd.Flags().BoolVar(&telemetryAttempt, "attempt", false, "validate a generation attempt record")
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := fileMustExist(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read telemetry record: %w", err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("parse telemetry record: %w", err)
	}

	printValidating(path)

	var result model.ValidationResult
	if telemetryAttempt {
		result = validate.ValidateGenerationAttempt(record)
	} else {
		result = validate.ValidateTelemetryRecord(record)
	}
	printResult(result)

	if !result.Passed {
		return ErrValidationFailed
	}
	return nil
}
