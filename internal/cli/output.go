package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/provgate/internal/model"
)

// printResult prints a validation result in the console format: errors
// always, warnings unless quiet, then the verdict line
func printResult(result model.ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Println("ERRORS:")
		for _, msg := range result.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	}

	if len(result.Warnings) > 0 && !quiet {
		fmt.Println("WARNINGS:")
		for _, msg := range result.Warnings {
			fmt.Printf("  - %s\n", msg)
		}
	}

	if result.Passed {
		if !quiet {
			fmt.Println("\n✓ Validation passed")
		}
	} else {
		fmt.Println("\n✗ Validation failed")
	}
}

// printValidating prints the header naming the file under validation
func printValidating(path string) {
	if !quiet {
		fmt.Printf("Validating: %s\n\n", path)
	}
}

func fileMustExist(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	return nil
}
