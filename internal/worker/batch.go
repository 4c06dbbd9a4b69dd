package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/provgate/internal/cache"
	"github.com/ppiankov/provgate/internal/model"
	"github.com/ppiankov/provgate/internal/pipeline"
)

// ManifestEntry is one line of a batch manifest: a work product file,
// optionally paired with its rendered content file
type ManifestEntry struct {
	Product string
	Content string
}

// GateJob runs the gate for one manifest entry
type GateJob struct {
	Entry ManifestEntry
	Gate  *pipeline.Gate
	Cache cache.Cache
	TTL   time.Duration
}

// Execute loads the entry's inputs (through the parse cache when one is
// configured) and runs the gate
func (j *GateJob) Execute(ctx context.Context) Result {
	rec, err := j.loadRecord(j.Entry.Product)
	if err != nil {
		return &GateResult{Entry: j.Entry, Error: err}
	}

	var content string
	if j.Entry.Content != "" {
		content, err = j.loadContent(j.Entry.Content)
		if err != nil {
			return &GateResult{Entry: j.Entry, Error: err}
		}
	}

	report, err := j.Gate.Run(ctx, j.Entry.Product, j.Entry.Content, rec, content)
	if err != nil {
		return &GateResult{Entry: j.Entry, Error: err}
	}

	return &GateResult{Entry: j.Entry, Report: report}
}

func (j *GateJob) loadRecord(path string) (*model.Record, error) {
	key, ok := j.cacheKey(path)
	if ok {
		if cached, found := j.Cache.Get(key); found {
			if rec, isRecord := cached.(*model.Record); isRecord {
				return rec, nil
			}
		}
	}

	rec, err := pipeline.LoadRecord(path)
	if err != nil {
		return nil, err
	}
	if ok {
		j.Cache.Set(key, rec, j.TTL)
	}
	return rec, nil
}

func (j *GateJob) loadContent(path string) (string, error) {
	key, ok := j.cacheKey(path)
	if ok {
		if cached, found := j.Cache.Get(key); found {
			if text, isString := cached.(string); isString {
				return text, nil
			}
		}
	}

	content, err := pipeline.LoadContent(path)
	if err != nil {
		return "", err
	}
	if ok {
		j.Cache.Set(key, content, j.TTL)
	}
	return content, nil
}

// cacheKey builds a mtime-aware key; a stat failure just disables
// caching for that path and lets the loader surface the real error
func (j *GateJob) cacheKey(path string) (string, bool) {
	if j.Cache == nil {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	return cache.FileKey(path, info.ModTime()), true
}

// GateResult is the outcome of one batch entry
type GateResult struct {
	Entry  ManifestEntry
	Report *model.GateReport
	Error  error
}

// GetError returns the job-level error, if any
func (r *GateResult) GetError() error {
	return r.Error
}

// BatchProcessor runs the gate over many manifest entries concurrently
type BatchProcessor struct {
	gate        *pipeline.Gate
	cache       cache.Cache
	ttl         time.Duration
	concurrency int
	log         zerolog.Logger
}

// NewBatchProcessor creates a batch processor. The cache may be nil to
// parse every file per entry.
func NewBatchProcessor(gate *pipeline.Gate, parseCache cache.Cache, ttl time.Duration, concurrency int, logger zerolog.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		gate:        gate,
		cache:       parseCache,
		ttl:         ttl,
		concurrency: concurrency,
		log:         logger,
	}
}

// Process runs all entries through the worker pool
func (b *BatchProcessor) Process(ctx context.Context, entries []ManifestEntry) []*GateResult {
	if len(entries) == 0 {
		return []*GateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, entry := range entries {
		pool.Submit(&GateJob{
			Entry: entry,
			Gate:  b.gate,
			Cache: b.cache,
			TTL:   b.ttl,
		})
	}

	results := pool.Wait()

	gateResults := make([]*GateResult, 0, len(results))
	for _, result := range results {
		gateResults = append(gateResults, result.(*GateResult))
	}

	b.log.Debug().Int("entries", len(entries)).Int("results", len(gateResults)).Msg("batch complete")
	return gateResults
}

// ProcessFile reads a manifest and processes its entries concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, manifestPath string) ([]*GateResult, error) {
	entries, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.Process(ctx, entries), nil
}

// ReadManifest reads a batch manifest: one entry per line, a work
// product path optionally followed by a content path, whitespace
// separated. Blank lines and # comments are skipped, duplicates are
// processed once.
func ReadManifest(path string) ([]ManifestEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []ManifestEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			entries = append(entries, ManifestEntry{Product: fields[0]})
		case 2:
			entries = append(entries, ManifestEntry{Product: fields[0], Content: fields[1]})
		default:
			return nil, fmt.Errorf("manifest line %d: expected 'product [content]', got %d fields", lineNo, len(fields))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return entries, nil
}
