// Package report renders ValidationResults as human- or machine-readable
// text. Rendering is a pure projection: nothing here recomputes metrics.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lithium-validation/lithium/internal/model"
)

// Format selects a rendering style.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatSummary  Format = "summary"
)

// Renderer formats validation results.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. The footer is a one-line attribution
// appended to markdown reports.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Render produces the result in the requested format. Unknown formats fall
// back to plain text.
func (r *Renderer) Render(result model.ValidationResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return r.JSON(result)
	case FormatMarkdown:
		return r.Markdown(result, true), nil
	case FormatSummary:
		return r.Summary(result, true), nil
	default:
		return r.Text(result), nil
	}
}

// JSON dumps the result as an indented flat record.
func (r *Renderer) JSON(result model.ValidationResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(data), nil
}

// Markdown produces the full prose report.
func (r *Renderer) Markdown(result model.ValidationResult, includeRecommendations bool) string {
	var b strings.Builder

	status := "❌ FAILED"
	if result.Passed {
		status = "✅ PASSED"
	}

	fmt.Fprintf(&b, "# Validation Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Overall Score:** %.1f%%  \n", result.OverallScore*100)
	fmt.Fprintf(&b, "**Status:** %s  \n", status)
	fmt.Fprintf(&b, "**Hallucination Risk:** %s\n\n", result.HallucinationRisk)

	b.WriteString("## Confidence Distribution\n\n")
	for _, level := range model.ConfidenceLevels {
		if count, ok := result.ConfidenceDistribution[level.String()]; ok {
			fmt.Fprintf(&b, "- **%s:** %d claims\n", level, count)
		}
	}

	fmt.Fprintf(&b, "\n## Key Metrics\n\n")
	fmt.Fprintf(&b, "- **Singleton Rate:** %.1f%%\n", result.SingletonRate*100)
	fmt.Fprintf(&b, "- **Validation Flags:** %d\n", len(result.ValidationFlags))

	b.WriteString("\n## Issues Found\n\n")
	for _, flag := range result.ValidationFlags {
		fmt.Fprintf(&b, "- %s\n", titleCase(flag))
	}

	if includeRecommendations {
		b.WriteString("\n## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by Lithium. Scores reflect lexical support, not truth.*\n")
	}

	return b.String()
}

// Text produces the plain-text report.
func (r *Renderer) Text(result model.ValidationResult) string {
	var b strings.Builder

	status := "FAILED"
	if result.Passed {
		status = "PASSED"
	}

	b.WriteString("VALIDATION REPORT\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "Generated: %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Overall Score: %.1f%%\n", result.OverallScore*100)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Hallucination Risk: %s\n\n", result.HallucinationRisk)

	b.WriteString("ISSUES:\n")
	for _, flag := range result.ValidationFlags {
		fmt.Fprintf(&b, "  - %s\n", strings.ReplaceAll(flag, "_", " "))
	}

	b.WriteString("\nRECOMMENDATIONS:\n")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}

	return b.String()
}

// Summary produces the short block used by tool responses.
func (r *Renderer) Summary(result model.ValidationResult, includeRecommendations bool) string {
	var b strings.Builder

	status := "❌ FAILED"
	if result.Passed {
		status = "✅ PASSED"
	}

	keyIssues := "None"
	if len(result.ValidationFlags) > 0 {
		top := result.ValidationFlags
		if len(top) > 3 {
			top = top[:3]
		}
		keyIssues = strings.Join(top, ", ")
	}

	fmt.Fprintf(&b, "**Validation Summary**\n\n")
	fmt.Fprintf(&b, "Score: %.1f%%\n", result.OverallScore*100)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Risk: %s\n", result.HallucinationRisk)
	fmt.Fprintf(&b, "Singleton Rate: %.1f%%\n\n", result.SingletonRate*100)
	fmt.Fprintf(&b, "**Key Issues:** %s\n", keyIssues)

	if includeRecommendations && len(result.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n**Top Recommendation:** %s\n", result.Recommendations[0])
	}

	return b.String()
}

// titleCase turns an ISSUE_FLAG_CODE into "Issue Flag Code".
func titleCase(flag string) string {
	words := strings.Split(strings.ToLower(flag), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
