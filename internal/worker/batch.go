package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lithium-validation/lithium/internal/engine"
	"github.com/lithium-validation/lithium/internal/extract"
	"github.com/lithium-validation/lithium/internal/model"
)

// ValidateJob validates the content of one file against shared sources
type ValidateJob struct {
	Path      string
	Sources   []string
	Metadata  model.Metadata
	Validator *engine.Validator
}

// Execute executes the validation job
func (j *ValidateJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ValidateResult{Path: j.Path, Error: err}
	}

	raw, err := os.ReadFile(j.Path)
	if err != nil {
		return &ValidateResult{Path: j.Path, Error: fmt.Errorf("read file: %w", err)}
	}

	content, err := extract.SourceText(string(raw))
	if err != nil {
		return &ValidateResult{Path: j.Path, Error: fmt.Errorf("extract text: %w", err)}
	}

	meta := j.Metadata
	meta.Sources = j.Sources
	result := j.Validator.Validate(content, meta)

	return &ValidateResult{Path: j.Path, Result: &result}
}

// ValidateResult represents the result of a validation job
type ValidateResult struct {
	Path   string
	Result *model.ValidationResult
	Error  error
}

// GetError returns the error from the validation result
func (r *ValidateResult) GetError() error {
	return r.Error
}

// BatchProcessor validates multiple files concurrently against a common
// set of reference sources.
type BatchProcessor struct {
	validator   *engine.Validator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(validator *engine.Validator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessPaths validates the given files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, sources []string, meta model.Metadata) []*ValidateResult {
	if len(paths) == 0 {
		return []*ValidateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ValidateJob{
			Path:      path,
			Sources:   sources,
			Metadata:  meta,
			Validator: b.validator,
		})
	}

	results := pool.Wait()

	validateResults := make([]*ValidateResult, len(results))
	for i, result := range results {
		validateResults[i] = result.(*ValidateResult)
	}

	return validateResults
}

// ProcessManifest reads file paths from a manifest and validates them
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string, sources []string, meta model.Metadata) ([]*ValidateResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths, sources, meta), nil
}

// ReadManifest reads file paths from a manifest file (one per line).
// Blank lines and lines starting with # are skipped, duplicates dropped.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
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
