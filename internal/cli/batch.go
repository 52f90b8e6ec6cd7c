package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/pipeline"
	"github.com/nfarrow/recoup/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Analyze multiple documents into one claim",
	Long: `Batch reads document paths from a manifest file (one per line) and
runs extraction concurrently. The extracted deltas are then merged into
the claim record one at a time, so the final record is the same
regardless of which document finished first.

Example:
  recoup batch docs.txt --provider openai
  recoup batch docs.txt --claim 4f2c... --concurrency 8 --output-dir ./out
  recoup batch payloads.txt --extracted`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&claimID, "claim", "", "existing claim ID to merge into (default: new claim)")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent extraction workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./recoup-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist the claim record")
	batchCmd.Flags().BoolVar(&preExtracted, "extracted", false, "manifest lists pre-extracted JSON payloads, skip the extraction service")

	batchCmd.Flags().StringVar(&extractProvider, "provider", "", "extraction provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&extractModel, "model", "", "extraction model name")

	addPreferenceFlags(batchCmd)
	addProcedureFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := applyProviderFlags(cfg); err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !noFooter
	if noStore {
		cfg.Store.Enabled = false
	}
	if concurrency > 0 {
		cfg.Concurrency.ExtractWorkers = concurrency
	}

	p := pipeline.NewPipeline(cfg, logger)

	record, err := p.LoadOrCreate(claimID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Recoup Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", file)
	fmt.Fprintf(os.Stderr, "  Claim:        %s\n", record.ID)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.ExtractWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	var results []*worker.ExtractResult
	if preExtracted {
		results, err = parsePayloadManifest(file, p)
	} else {
		if !p.ExtractionEnabled() {
			return fmt.Errorf("no extraction provider configured; set --provider or use --extracted")
		}
		processor := worker.NewBatchProcessor(p, cfg.Concurrency.ExtractWorkers,
			cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
		results, err = processor.ProcessManifest(ctx, file)
	}
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	// Extraction ran concurrently; the merge is strictly sequential
	successCount := 0
	failureCount := 0
	for _, res := range results {
		if res.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		successCount++
		record = p.Apply(record, res.Delta)
		fmt.Fprintf(os.Stderr, "✓ %s\n", filepath.Base(res.Path))
	}

	record = p.Apply(record, procedureDelta())

	if err := p.Save(record); err != nil {
		return err
	}

	result := p.Assess(record, time.Now().UTC(), preferences())

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	jsonPath := filepath.Join(outputDir, "claim-"+shortClaimID(record.ID)+".json")
	mdPath := filepath.Join(outputDir, "claim-"+shortClaimID(record.ID)+".md")
	if err := p.RenderResult(result, jsonPath, mdPath, verbose); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents: %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Merged:    %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// parsePayloadManifest handles the pre-extracted path: each manifest
// entry is a JSON payload file, parsed locally with no provider calls
func parsePayloadManifest(file string, p *pipeline.Pipeline) ([]*worker.ExtractResult, error) {
	paths, err := worker.ReadPathsFromFile(file)
	if err != nil {
		return nil, err
	}

	results := make([]*worker.ExtractResult, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, &worker.ExtractResult{Path: path, Error: err})
			continue
		}
		delta, suggestion, err := p.ParseDelta(data, model.SourceDocumentExtraction, filepath.Base(path))
		if err != nil {
			results = append(results, &worker.ExtractResult{Path: path, Error: err})
			continue
		}
		results = append(results, &worker.ExtractResult{Path: path, Delta: delta, Suggestion: suggestion})
	}
	return results, nil
}

func shortClaimID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
