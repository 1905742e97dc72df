// Package llm provides optional advisory summaries of validation results.
// Summaries are narrative only and never feed back into scoring.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithium-validation/lithium/internal/model"
)

// Provider generates natural-language summaries of validation results.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a short narrative summary of a validation result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Result is the validation result to summarize
	Result model.ValidationResult

	// Content is the validated text, truncated before sending
	Content string

	// Prompt overrides the default prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the provider output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt. The instructions
// keep the summary about support quality rather than truth.
func BuildPrompt(result model.ValidationResult, content string) string {
	verdict := "FAILED"
	if result.Passed {
		verdict = "PASSED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are summarizing a validation report. The validator measures how well claims are lexically supported by reference sources - it NEVER establishes truth.

RULES:
1. Describe support quality, not correctness. Never say "true" or "false".
2. Do not speculate beyond the numbers given.
3. If the result flags issues, name the most important ones.

Result:
- Verdict: %s
- Overall score: %.3f
- Hallucination risk: %s
- Singleton rate: %.2f
`, verdict, result.OverallScore, result.HallucinationRisk, result.SingletonRate)

	if len(result.ValidationFlags) > 0 {
		b.WriteString("- Flags: " + strings.Join(result.ValidationFlags, ", ") + "\n")
	}
	if len(result.ConfidenceDistribution) > 0 {
		b.WriteString("- Confidence distribution:")
		for tier, n := range result.ConfidenceDistribution {
			fmt.Fprintf(&b, " %s=%d", tier, n)
		}
		b.WriteString("\n")
	}

	if content != "" {
		fmt.Fprintf(&b, "\nValidated text (may be truncated):\n%s\n", truncate(content, 2000))
	}

	b.WriteString("\nProvide a 3-4 sentence summary focusing on how well the text is supported.")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// NewProvider constructs the configured provider, or nil when summarization
// is disabled.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
