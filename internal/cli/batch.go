package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/provgate/internal/cache"
	"github.com/ppiankov/provgate/internal/pipeline"
	"github.com/ppiankov/provgate/internal/worker"
)

var (
	batchWorkers int
	batchNoCache bool
	batchOutDir  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Run the gate over many work products concurrently",
	Long: `Batch reads a manifest with one entry per line:

  # work product, optionally followed by its rendered content
  products/permit.json content/permit.md
  products/fees.yaml   content/fees.md
  products/offices.json

Entries run concurrently through a worker pool. A work product named by
several entries is parsed once per run. The command fails if any entry
fails.

Example:
  provgate batch manifest.txt
  provgate batch manifest.txt --workers 8 --out reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent gate workers (default from config)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the parse cache")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for per-entry JSON reports (optional)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	if err := fileMustExist(manifestPath); err != nil {
		return err
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}

	workers := cfg.Concurrency.GateWorkers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	gate, err := pipeline.NewGate(cfg, log)
	if err != nil {
		return err
	}

	var parseCache cache.Cache
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if cfg.Cache.Enabled && !batchNoCache {
		parseCache = cache.NewMemoryCache(ttl, 2*ttl)
	}

	processor := worker.NewBatchProcessor(gate, parseCache, ttl, workers, log)

	start := time.Now()
	results, err := processor.ProcessFile(context.Background(), manifestPath)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	passed, failed, errored := 0, 0, 0
	for _, result := range results {
		switch {
		case result.Error != nil:
			errored++
			fmt.Printf("ERROR  %s: %v\n", result.Entry.Product, result.Error)
		case result.Report.Passed:
			passed++
			if !quiet {
				fmt.Printf("PASS   %s\n", result.Entry.Product)
			}
		default:
			failed++
			fmt.Printf("FAIL   %s (%d errors, %d warnings)\n",
				result.Entry.Product, result.Report.ErrorCount(), result.Report.WarningCount())
		}

		if batchOutDir != "" && result.Report != nil {
			outPath := fmt.Sprintf("%s/%s.json", batchOutDir, result.Report.ReportID)
			if err := renderer.WriteJSON(result.Report, outPath); err != nil {
				return err
			}
		}
	}

	if !quiet {
		fmt.Printf("\n%d passed, %d failed, %d errored in %s\n",
			passed, failed, errored, time.Since(start).Round(time.Millisecond))
	}

	if failed > 0 || errored > 0 {
		return ErrValidationFailed
	}
	return nil
}
