package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lithium-validation/lithium/internal/engine"
	"github.com/lithium-validation/lithium/internal/llm"
	"github.com/lithium-validation/lithium/internal/model"
	"github.com/lithium-validation/lithium/internal/report"
)

var (
	reportText    string
	reportFile    string
	reportSources []string
	reportOut     string
	reportFmt     string
	llmEnabled    bool
	llmModel      string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full validation report for one text",
	Long: `Report runs a full validation and renders a complete report:
- Markdown or JSON output
- Optional LLM-written narrative summary appended to the report

The LLM summary is advisory prose only; it never changes any score.

Example:
  lithium report --file draft.md --sources a.txt,b.txt
  lithium report --file draft.md --sources a.txt --format json --output report.json
  lithium report --file draft.md --sources a.txt --llm --llm-model gpt-4o-mini`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportText, "text", "", "text to validate")
	reportCmd.Flags().StringVar(&reportFile, "file", "", "file containing the text to validate")
	reportCmd.Flags().StringSliceVar(&reportSources, "sources", nil, "reference source files (text or HTML)")
	reportCmd.Flags().StringVar(&reportFmt, "format", "markdown", "report format (markdown, json)")
	reportCmd.Flags().StringVar(&reportOut, "output", "", "write report to file instead of stdout")
	reportCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM-written summary (requires OPENAI_API_KEY)")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	content, err := resolveContent(reportText, reportFile)
	if err != nil {
		return err
	}

	sources, err := loadSources(reportSources)
	if err != nil {
		return err
	}

	cfg := loadConfig()

	validator := engine.New(cfg.Validation)
	result := validator.Validate(content, model.Metadata{
		Sources:   sources,
		Timestamp: time.Now(),
	})

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)

	var rendered string
	switch report.Format(reportFmt) {
	case report.FormatMarkdown:
		rendered = renderer.Markdown(result, true)
	case report.FormatJSON:
		rendered, err = renderer.JSON(result)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (use markdown or json)", reportFmt)
	}

	if llmEnabled && report.Format(reportFmt) == report.FormatMarkdown {
		summary, err := llmSummary(cfg, result, content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary unavailable: %v\n", err)
		} else if summary != "" {
			rendered += "\n## Narrative Summary\n\n" + summary + "\n"
		}
	}

	return writeOutput(rendered, reportOut)
}

func llmSummary(cfg *model.Config, result model.ValidationResult, content string) (string, error) {
	llmCfg := cfg.LLM
	llmCfg.Provider = "openai"
	llmCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if llmCfg.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if llmModel != "" {
		llmCfg.Model = llmModel
	}

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return "", err
	}

	resp, err := provider.Summarize(context.Background(), llm.SummarizeRequest{
		Result:  result,
		Content: content,
	})
	if err != nil {
		return "", err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Generated summary using %s/%s (%d tokens)\n", provider.Name(), resp.Model, resp.TokensUsed)
	}
	return resp.Summary, nil
}
