package engine

import (
	"strings"

	"github.com/lithium-validation/lithium/internal/model"
)

// Keyword sets for claim classification, tested in priority order.
// Matching is case-insensitive substring search over the claim.
var (
	empiricalKeywords     = []string{"data shows", "evidence", "study", "research"}
	inferentialKeywords   = []string{"therefore", "thus", "implies", "suggests"}
	hypotheticalKeywords  = []string{"might", "could", "possibly", "hypothesis"}
	computationalKeywords = []string{"calculate", "compute", "algorithm"}
)

// SegmentClaims splits content into candidate claims: runs of sentence
// terminators (. ! ?) delimit fragments, empty fragments are dropped.
// Appearance order is preserved. This is the unfiltered variant the scoring
// pipeline uses.
func SegmentClaims(content string) []string {
	fragments := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	claims := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			claims = append(claims, trimmed)
		}
	}
	return claims
}

// SegmentSubstantialClaims additionally drops fragments of 20 characters or
// fewer. Claim-listing tools use this variant so their per-claim output is
// not dominated by stub fragments; the scoring path does not.
func SegmentSubstantialClaims(content string) []string {
	all := SegmentClaims(content)
	claims := all[:0]
	for _, c := range all {
		if len(c) > 20 {
			claims = append(claims, c)
		}
	}
	return claims
}

// ClassifyClaim maps a claim to exactly one type by first matching keyword
// set; claims matching nothing are arbitrary. Pure function of the text.
func ClassifyClaim(claim string) model.ClaimType {
	lower := strings.ToLower(claim)

	switch {
	case containsAny(lower, empiricalKeywords):
		return model.ClaimTypeEmpirical
	case containsAny(lower, inferentialKeywords):
		return model.ClaimTypeInferential
	case containsAny(lower, hypotheticalKeywords):
		return model.ClaimTypeHypothetical
	case containsAny(lower, computationalKeywords):
		return model.ClaimTypeComputational
	default:
		return model.ClaimTypeArbitrary
	}
}

// AssignConfidence maps (claim type, support count) to a confidence tier.
// The empirical+3 rule must be checked before the generic >=2 rule: a
// 3-support non-empirical claim resolves MEDIUM, not HIGH.
func AssignConfidence(claimType model.ClaimType, supportCount int) model.ConfidenceLevel {
	switch {
	case supportCount >= 3 && claimType == model.ClaimTypeEmpirical:
		return model.ConfidenceHigh
	case supportCount >= 2:
		return model.ConfidenceMedium
	case supportCount >= 1:
		return model.ConfidenceLow
	default:
		return model.ConfidenceUncertain
	}
}

// SupportOnlyConfidence is the tier assignment the claim-listing tools use:
// support count alone, no type gate on HIGH.
func SupportOnlyConfidence(supportCount int) model.ConfidenceLevel {
	switch {
	case supportCount >= 3:
		return model.ConfidenceHigh
	case supportCount >= 2:
		return model.ConfidenceMedium
	case supportCount >= 1:
		return model.ConfidenceLow
	default:
		return model.ConfidenceUncertain
	}
}

// AnalyzeClaims segments content into substantial claims and scores each
// one against the sources. This is the per-claim view; the scoring pipeline
// aggregates instead and never materializes Claim values.
func AnalyzeClaims(content string, sources []string) []model.Claim {
	claims := SegmentSubstantialClaims(content)

	out := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		support := SupportCount(c, sources)
		out = append(out, model.Claim{
			Text:         c,
			Type:         ClassifyClaim(c),
			Confidence:   SupportOnlyConfidence(support),
			SupportCount: support,
		})
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
