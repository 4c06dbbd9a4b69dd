package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/model"
	"github.com/ppiankov/provgate/internal/validate"
)

// Extensions worth scanning for leaked real data
var leakScanExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".md":   true,
	".txt":  true,
	".html": true,
	".htm":  true,
}

// leakscanCmd represents the leakscan command
var leakscanCmd = &cobra.Command{
	Use:   "leakscan <path>...",
	Short: "Scan files for accidental inclusion of real data",
	Long: `Leakscan checks fixtures and documentation for real data that should
never appear in the repository: real authority domains, non-example
email addresses, and real phone number formats. Directories are walked
recursively over JSON, YAML, Markdown, text, and HTML files.

Example:
  provgate leakscan examples/ docs/ README.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLeakscan,
}

func init() {
	rootCmd.AddCommand(leakscanCmd)
}

func runLeakscan(cmd *cobra.Command, args []string) error {
	scanner := validate.NewLeakScanner()

	var results []model.ValidationResult
	scanned := 0

	for _, root := range args {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			result, err := scanFile(scanner, root)
			if err != nil {
				return err
			}
			results = append(results, result)
			scanned++
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !leakScanExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			result, err := scanFile(scanner, path)
			if err != nil {
				return err
			}
			results = append(results, result)
			scanned++
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", root, err)
		}
	}

	combined := model.Combine(results...)

	if len(combined.Errors) > 0 {
		fmt.Println("LEAKS:")
		for _, msg := range combined.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	}

	if combined.Passed {
		if !quiet {
			fmt.Printf("✓ No leaks found in %d files\n", scanned)
		}
		return nil
	}

	fmt.Printf("\n✗ %d leaks found in %d files\n", len(combined.Errors), scanned)
	return ErrValidationFailed
}

func scanFile(scanner *validate.LeakScanner, path string) (model.ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ValidationResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return scanner.Scan(path, f)
}
