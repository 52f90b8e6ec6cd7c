package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfarrow/recoup/internal/extract"
	"github.com/nfarrow/recoup/internal/reconcile"
)

// Analyzer turns one document's text into a claim delta
type Analyzer interface {
	ExtractDelta(ctx context.Context, text, sourceName string) (*reconcile.Delta, extract.Suggestion, error)
}

// ExtractJob analyzes one document file
type ExtractJob struct {
	Path        string
	Analyzer    Analyzer
	Limiter     *Limiter
	ProviderKey string
}

// Execute reads the document and runs it through the analyzer
func (j *ExtractJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.ProviderKey); err != nil {
			return &ExtractResult{Path: j.Path, Error: err}
		}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ExtractResult{Path: j.Path, Error: fmt.Errorf("read document: %w", err)}
	}

	delta, suggestion, err := j.Analyzer.ExtractDelta(ctx, string(data), filepath.Base(j.Path))
	if err != nil {
		return &ExtractResult{Path: j.Path, Error: err}
	}

	return &ExtractResult{
		Path:       j.Path,
		Delta:      delta,
		Suggestion: suggestion,
	}
}

// ExtractResult represents the result of one document extraction
type ExtractResult struct {
	Path       string
	Delta      *reconcile.Delta
	Suggestion extract.Suggestion
	Error      error
}

// GetError returns the error from the extraction result
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts deltas from multiple documents concurrently.
// Only the extraction runs in parallel; the caller merges the returned
// deltas into the claim record one at a time.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	providerKey string
}

// NewBatchProcessor creates a new batch processor. A non-positive rate
// disables rate limiting.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
		providerKey: "extraction",
	}
}

// ProcessPaths extracts deltas from the given document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ExtractJob{
			Path:        path,
			Analyzer:    b.analyzer,
			Limiter:     b.limiter,
			ProviderKey: b.providerKey,
		})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}

	return extractResults
}

// ProcessManifest reads document paths from a manifest file and
// processes them concurrently
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*ExtractResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Relative paths are resolved against the manifest's directory.
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	baseDir := filepath.Dir(manifestPath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
