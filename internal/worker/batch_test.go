package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfarrow/recoup/internal/extract"
	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/reconcile"
)

// MockAnalyzer implements the Analyzer interface
type MockAnalyzer struct {
	ShouldError bool
}

func (m *MockAnalyzer) ExtractDelta(ctx context.Context, text, sourceName string) (*reconcile.Delta, extract.Suggestion, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, extract.Suggestion{}, errors.New("extraction error")
	}
	delta := &reconcile.Delta{
		Defendant: &model.TrackedParty{
			Name: model.NewField("Acme Ltd", model.Provenance{
				Source:          model.SourceDocumentExtraction,
				Confidence:      75,
				SourceReference: sourceName,
			}),
		},
	}
	return delta, extract.Suggestion{Document: model.DocLetterBeforeAction}, nil
}

func writeDocs(t *testing.T, names ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("Invoice INV-1 remains unpaid."), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, paths
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	_, paths := writeDocs(t, "a.txt", "b.txt", "c.txt")
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
			continue
		}
		if res.Delta == nil || res.Delta.Defendant == nil {
			t.Errorf("expected delta for %s", res.Path)
			continue
		}
		ref := res.Delta.Defendant.Name.Provenance.SourceReference
		if ref != filepath.Base(res.Path) {
			t.Errorf("source reference = %q, want %q", ref, filepath.Base(res.Path))
		}
	}
}

func TestBatchProcessor_ProcessPaths_Error(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{ShouldError: true}, 2, 0, 0)

	_, paths := writeDocs(t, "a.txt")
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Delta != nil {
		t.Error("expected nil delta on error")
	}
}

func TestBatchProcessor_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results := processor.ProcessPaths(context.Background(), []string{"no_such_doc.txt"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("unreadable document should surface as a job error")
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results := processor.ProcessPaths(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir, _ := writeDocs(t, "a.txt", "b.txt")
	manifest := filepath.Join(dir, "docs.txt")
	content := "a.txt\n# comment\nb.txt\n   \na.txt\n"
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	// Comments and blanks skipped, duplicates collapsed, paths resolved
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadPathsFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessManifest(t *testing.T) {
	dir, _ := writeDocs(t, "a.txt", "b.txt", "c.txt")
	manifest := filepath.Join(dir, "docs.txt")
	if err := os.WriteFile(manifest, []byte("a.txt\nb.txt\n# skip\n\nc.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)
	results, err := processor.ProcessManifest(context.Background(), manifest)
	if err != nil {
		t.Fatalf("ProcessManifest failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessManifest_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)
	if _, err := processor.ProcessManifest(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent manifest, got nil")
	}
}

func TestExtractResult_GetError(t *testing.T) {
	r1 := &ExtractResult{Path: "a.txt"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	want := errors.New("extraction failed")
	r2 := &ExtractResult{Path: "a.txt", Error: want}
	if r2.GetError() != want {
		t.Errorf("expected %v, got %v", want, r2.GetError())
	}
}
