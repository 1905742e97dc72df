package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lithium-validation/lithium/internal/engine"
	"github.com/lithium-validation/lithium/internal/extract"
	"github.com/lithium-validation/lithium/internal/model"
	"github.com/lithium-validation/lithium/internal/report"
)

var (
	checkText    string
	checkFile    string
	sourceFiles  []string
	checkDomain  string
	checkScope   string
	reportFormat string
	outputPath   string
	noFooter     bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a text against reference sources",
	Long: `Check validates one text against reference source files:
- Segments the text into claims and classifies each
- Counts supporting sources per claim (lexical overlap)
- Scores singleton rate, validation ratio, and confidence
- Emits a pass/fail verdict with flags and recommendations

Exit code is 1 when validation fails.

Example:
  lithium check --text "Data shows X increased." --sources a.txt,b.txt
  lithium check --file draft.md --sources report.html --report markdown
  lithium check --file draft.md --sources a.txt --report json --output result.json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkText, "text", "", "text to validate")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "file containing the text to validate")
	checkCmd.Flags().StringSliceVar(&sourceFiles, "sources", nil, "reference source files (text or HTML)")
	checkCmd.Flags().StringVar(&checkDomain, "domain", "", "domain rules to apply (consulting, technical, research, general)")
	checkCmd.Flags().StringVar(&checkScope, "scope", "", "scope definition for the content")
	checkCmd.Flags().StringVar(&reportFormat, "report", "text", "report format (text, markdown, json)")
	checkCmd.Flags().StringVar(&outputPath, "output", "", "write report to file instead of stdout")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runCheck(cmd *cobra.Command, args []string) error {
	content, err := resolveContent(checkText, checkFile)
	if err != nil {
		return err
	}

	sources, err := loadSources(sourceFiles)
	if err != nil {
		return err
	}

	cfg := loadConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating %d characters against %d sources\n", len(content), len(sources))
		if checkDomain != "" {
			fmt.Fprintf(os.Stderr, "Domain: %s\n", checkDomain)
		}
		fmt.Fprintln(os.Stderr)
	}

	validator := engine.New(cfg.RulesFor(checkDomain))
	result := validator.Validate(content, model.Metadata{
		Sources:   sources,
		Scope:     checkScope,
		Domain:    checkDomain,
		Timestamp: time.Now(),
	})

	renderer := report.NewRenderer(cfg.Output.IncludeFooter && !noFooter)
	rendered, err := renderer.Render(result, report.Format(reportFormat))
	if err != nil {
		return err
	}

	if err := writeOutput(rendered, outputPath); err != nil {
		return err
	}

	if !result.Passed {
		// Failed verdict exits 1 without the error banner.
		os.Exit(1)
	}
	return nil
}

// resolveContent picks text from either --text or --file, exactly one.
func resolveContent(text, file string) (string, error) {
	switch {
	case text != "" && file != "":
		return "", fmt.Errorf("use either --text or --file, not both")
	case text != "":
		return text, nil
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("no input: provide --text or --file")
	}
}

// loadSources reads reference files and reduces HTML documents to their
// visible text.
func loadSources(paths []string) ([]string, error) {
	sources := make([]string, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", path, err)
		}
		text, err := extract.SourceText(string(raw))
		if err != nil {
			return nil, fmt.Errorf("extract source %s: %w", path, err)
		}
		sources = append(sources, text)
	}
	return sources, nil
}

func writeOutput(rendered, path string) error {
	if path == "" {
		fmt.Println(rendered)
		return nil
	}
	if err := os.WriteFile(path, []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Report written to %s\n", path)
	}
	return nil
}
