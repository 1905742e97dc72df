package model

// ConfidenceLevel is an ordered confidence tier for a claim. The tier
// identity (which level) and its scoring weight (how much it counts) are
// deliberately separate: compare levels directly, fetch the weight via
// Weight().
type ConfidenceLevel int

const (
	ConfidenceHigh ConfidenceLevel = iota // Strongly corroborated empirical claim
	ConfidenceMedium
	ConfidenceLow
	ConfidenceUncertain // Below threshold - should abstain
)

// ConfidenceLevels lists every tier in descending order of confidence.
var ConfidenceLevels = []ConfidenceLevel{
	ConfidenceHigh,
	ConfidenceMedium,
	ConfidenceLow,
	ConfidenceUncertain,
}

// Weight returns the scoring weight attached to the tier. Weights are
// strictly descending: HIGH > MEDIUM > LOW > UNCERTAIN.
func (l ConfidenceLevel) Weight() float64 {
	switch l {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.75
	case ConfidenceLow:
		return 0.5
	default:
		return 0.0
	}
}

func (l ConfidenceLevel) String() string {
	switch l {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceLow:
		return "LOW"
	default:
		return "UNCERTAIN"
	}
}

// MarshalText makes ConfidenceLevel serialize as its tier name.
func (l ConfidenceLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText restores a ConfidenceLevel from its tier name. Unknown
// names map to UNCERTAIN.
func (l *ConfidenceLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HIGH":
		*l = ConfidenceHigh
	case "MEDIUM":
		*l = ConfidenceMedium
	case "LOW":
		*l = ConfidenceLow
	default:
		*l = ConfidenceUncertain
	}
	return nil
}

// RiskLevel is the derived hallucination-risk tier. It is independent of
// the pass/fail verdict: a result can pass with MEDIUM risk or fail with
// LOW risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskFromScore maps the numeric hallucination risk to a tier. Boundaries
// are lower-inclusive: exactly 0.2 is MEDIUM, exactly 0.5 is HIGH.
func RiskFromScore(score float64) RiskLevel {
	switch {
	case score < 0.2:
		return RiskLow
	case score < 0.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}
