package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithium-validation/lithium/internal/engine"
	"github.com/lithium-validation/lithium/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "manifest.txt", `
# batch of outputs
a.txt
b.txt

a.txt
`)

	paths, err := ReadManifest(manifest)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	want := []string{"a.txt", "b.txt"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	if _, err := ReadManifest("/nonexistent/manifest.txt"); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestBatchProcessorProcessPaths(t *testing.T) {
	dir := t.TempDir()
	text := "Data shows the region produced forty units in the study period."
	good := writeFile(t, dir, "good.txt", text)
	missing := filepath.Join(dir, "missing.txt")

	processor := NewBatchProcessor(engine.New(model.ValidationConfig{}), 2)
	results := processor.ProcessPaths(context.Background(), []string{good, missing}, []string{text, text, text}, model.Metadata{})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	byPath := map[string]*ValidateResult{}
	for _, r := range results {
		byPath[r.Path] = r
	}

	if r := byPath[good]; r.GetError() != nil {
		t.Errorf("good file errored: %v", r.GetError())
	} else if r.Result == nil {
		t.Error("good file has no result")
	}

	if r := byPath[missing]; r.GetError() == nil {
		t.Error("missing file should error")
	}
}

func TestBatchProcessorHTMLSource(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", "<html><body><p>Research indicates the pilot completed on schedule.</p></body></html>")

	processor := NewBatchProcessor(engine.New(model.ValidationConfig{}), 1)
	results := processor.ProcessPaths(context.Background(), []string{page}, []string{"Research indicates the pilot completed on schedule."}, model.Metadata{})

	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].GetError() != nil {
		t.Fatalf("unexpected error: %v", results[0].GetError())
	}
	if results[0].Result.ConfidenceDistribution == nil {
		t.Error("expected a populated validation result")
	}
}

func TestBatchProcessorEmptyInput(t *testing.T) {
	processor := NewBatchProcessor(engine.New(model.ValidationConfig{}), 2)
	results := processor.ProcessPaths(context.Background(), nil, nil, model.Metadata{})
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}
