package report

import (
	"math"

	"github.com/lithium-validation/lithium/internal/model"
)

// Quick is the simplified projection of a ValidationResult used by fast
// tool responses and non-verbose CLI output.
type Quick struct {
	Passed            bool            `json:"passed"`
	Score             float64         `json:"score"` // Percentage, one decimal
	Risk              model.RiskLevel `json:"risk"`
	KeyIssues         []string        `json:"key_issues"`         // Top 3 flags
	TopRecommendation string          `json:"top_recommendation"` // Empty if none
}

// QuickFrom projects a full result down to the quick shape.
func QuickFrom(result model.ValidationResult) Quick {
	issues := result.ValidationFlags
	if len(issues) > 3 {
		issues = issues[:3]
	}

	topRec := ""
	if len(result.Recommendations) > 0 {
		topRec = result.Recommendations[0]
	}

	return Quick{
		Passed:            result.Passed,
		Score:             RoundScore(result.OverallScore),
		Risk:              result.HallucinationRisk,
		KeyIssues:         issues,
		TopRecommendation: topRec,
	}
}

// RoundScore converts a [0,1] score to a percentage with one decimal.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 10
}
