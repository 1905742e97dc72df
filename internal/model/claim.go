package model

// Claim represents one sentence-like assertion segmented from the content
// under validation. Claims are recomputed on every validation call and are
// never persisted.
type Claim struct {
	Text         string          `json:"text"`                    // The claim text itself (trimmed)
	Type         ClaimType       `json:"type,omitempty"`          // Epistemological category
	Confidence   ConfidenceLevel `json:"confidence,omitempty"`    // Assigned confidence tier
	SupportCount int             `json:"support_count"`           // Number of corroborating sources
}

// ClaimType categorizes the epistemological foundation of a claim
type ClaimType string

const (
	ClaimTypeEmpirical     ClaimType = "empirical"     // Based on verifiable data
	ClaimTypeInferential   ClaimType = "inferential"   // Logical deduction from data
	ClaimTypeHypothetical  ClaimType = "hypothetical"  // Speculation or projection
	ClaimTypeArbitrary     ClaimType = "arbitrary"     // No pattern in data (singleton-prone)
	ClaimTypeComputational ClaimType = "computational" // Requires complex calculation
)

// ClaimTypes lists every claim type in classifier priority order. The
// classifier tests them in this order and falls through to arbitrary.
var ClaimTypes = []ClaimType{
	ClaimTypeEmpirical,
	ClaimTypeInferential,
	ClaimTypeHypothetical,
	ClaimTypeComputational,
	ClaimTypeArbitrary,
}
