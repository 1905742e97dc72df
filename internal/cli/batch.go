package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lithium-validation/lithium/internal/engine"
	"github.com/lithium-validation/lithium/internal/history"
	"github.com/lithium-validation/lithium/internal/model"
	"github.com/lithium-validation/lithium/internal/report"
	"github.com/lithium-validation/lithium/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchSources []string
	batchDomain  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Validate multiple files from a manifest in parallel",
	Long: `Batch validates multiple texts concurrently:
- Read file paths from the manifest (one per line, # comments allowed)
- Validate each file against the shared sources with a worker pool
- Write a per-file report to the output directory
- Print aggregate statistics across the whole batch

Example:
  lithium batch drafts.txt --sources report.txt
  lithium batch drafts.txt --sources a.txt,b.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lithium-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringSliceVar(&batchSources, "sources", nil, "shared reference source files")
	batchCmd.Flags().StringVar(&batchDomain, "domain", "", "domain rules to apply to every file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	sources, err := loadSources(batchSources)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Lithium Batch Validation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Sources:      %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	validator := engine.New(cfg.RulesFor(batchDomain))
	processor := worker.NewBatchProcessor(validator, cfg.Concurrency.Workers)

	results, err := processor.ProcessManifest(ctx, manifest, sources, model.Metadata{Domain: batchDomain})
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	log := history.NewLog()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++
		log.Append(*result.Result)

		mdPath := filepath.Join(outputDir, reportFilename(result.Path))
		rendered := renderer.Markdown(*result.Result, true)
		if err := os.WriteFile(mdPath, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Path, err)
			continue
		}

		verdict := "FAILED"
		if result.Result.Passed {
			verdict = "PASSED"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%s, score %.1f%%)\n", result.Path, verdict, result.Result.OverallScore*100)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Validated: %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)

	if stats, ok := log.Stats(); ok {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Passed:           %d\n", stats.Passed)
		fmt.Fprintf(os.Stderr, "  Failed:           %d\n", stats.Failed)
		fmt.Fprintf(os.Stderr, "  Pass rate:        %.1f%%\n", stats.PassRate*100)
		fmt.Fprintf(os.Stderr, "  Average score:    %.1f%%\n", stats.AverageScore*100)
		fmt.Fprintf(os.Stderr, "  Avg singleton:    %.1f%%\n", stats.AverageSingletonRate*100)
		if len(stats.CommonIssues) > 0 {
			issues := make([]string, 0, len(stats.CommonIssues))
			for _, fc := range stats.CommonIssues {
				issues = append(issues, fmt.Sprintf("%s(%d)", fc.Flag, fc.Count))
			}
			fmt.Fprintf(os.Stderr, "  Common issues:    %s\n", strings.Join(issues, ", "))
		}
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// reportFilename derives a report name from the validated file's base name.
func reportFilename(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".md"
}
