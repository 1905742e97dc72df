package model

import "time"

// Metadata is the caller-supplied context for one validation call. It is
// immutable for the duration of the call; a nil/empty source list is valid
// and simply means no claim can accumulate support.
type Metadata struct {
	Sources   []string  `json:"sources,omitempty"`   // Reference source texts (order irrelevant, duplicates allowed)
	Scope     string    `json:"scope,omitempty"`     // Optional scope definition
	Domain    string    `json:"domain,omitempty"`    // Optional domain label (consulting, technical, research, general)
	Timestamp time.Time `json:"timestamp,omitempty"` // Optional creation time
}

// ValidationResult is the sole output of a validation call. Created once,
// immutable thereafter; serializes to a flat record and back without loss.
type ValidationResult struct {
	Timestamp              time.Time      `json:"timestamp"`               // When the validation ran
	OverallScore           float64        `json:"overall_score"`           // Weighted blend in [0,1]
	ConfidenceDistribution map[string]int `json:"confidence_distribution"` // Tier name -> claim count
	SingletonRate          float64        `json:"singleton_rate"`          // Fraction of claims with <=1 supporting source
	ValidationFlags        []string       `json:"validation_flags"`        // Triggered issue codes, fixed order
	Recommendations        []string       `json:"recommendations"`         // Advisory strings, never capped here
	Passed                 bool           `json:"passed"`                  // Three-condition verdict
	HallucinationRisk      RiskLevel      `json:"hallucination_risk"`      // Derived risk tier, independent of Passed
}

// Validation flag codes, in the order the compiler emits them.
const (
	FlagHighSingletonRate        = "HIGH_SINGLETON_RATE"
	FlagPoorValidationRatio      = "POOR_VALIDATION_RATIO"
	FlagUnsupportedClaims        = "UNSUPPORTED_CLAIMS"
	FlagComputationalIntractable = "COMPUTATIONAL_INTRACTABILITY"
	FlagUndefinedScope           = "UNDEFINED_SCOPE"
	FlagHighAmbiguity            = "HIGH_AMBIGUITY"
	FlagMissingUncertaintyAck    = "MISSING_UNCERTAINTY_ACKNOWLEDGMENT"
	FlagConfirmationBias         = "CONFIRMATION_BIAS"
	FlagRecencyBias              = "RECENCY_BIAS"
	FlagGeographicBias           = "GEOGRAPHIC_BIAS"
)
