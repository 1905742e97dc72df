package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithium-validation/lithium/internal/model"
)

// compile folds the three stage outputs into the final result record.
func (v *Validator) compile(pre preValidation, gen generationAssessment, qa qualityScores, now time.Time) model.ValidationResult {
	passed := overallScore(pre, qa) >= 0.7 &&
		qa.singletonRate < v.cfg.SingletonThreshold &&
		qa.validationRatio >= 2.0

	distribution := make(map[string]int, len(gen.distribution))
	for level, count := range gen.distribution {
		distribution[level.String()] = count
	}

	return model.ValidationResult{
		Timestamp:              now,
		OverallScore:           overallScore(pre, qa),
		ConfidenceDistribution: distribution,
		SingletonRate:          qa.singletonRate,
		ValidationFlags:        v.flags(pre, gen, qa),
		Recommendations:        v.recommendations(pre, gen, qa),
		Passed:                 passed,
		HallucinationRisk:      model.RiskFromScore(qa.riskNumeric),
	}
}

// overallScore blends the three stage factors 0.3/0.4/0.3. Each factor is a
// product or average of values in [0,1], so the blend stays in [0,1]
// without an explicit clamp.
func overallScore(pre preValidation, qa qualityScores) float64 {
	preValScore := 1.0
	if !pre.scopeDefined {
		preValScore *= 0.5
	}
	if !pre.hasAbstentions {
		preValScore *= 0.7
	}
	preValScore *= 1.0 - pre.ambiguityScore

	qaScore := (1.0-qa.singletonRate)*0.5 + min(1.0, qa.validationRatio/4.0)*0.5

	return preValScore*0.3 + qa.confidenceWeighted*0.4 + qaScore*0.3
}

// flags emits the triggered issue codes in their fixed order.
func (v *Validator) flags(pre preValidation, gen generationAssessment, qa qualityScores) []string {
	var flags []string

	if qa.singletonRate > 0.3 {
		flags = append(flags, model.FlagHighSingletonRate)
	}
	if qa.validationRatio < 1.0 {
		flags = append(flags, model.FlagPoorValidationRatio)
	}
	if len(gen.unsupported) > 0 {
		flags = append(flags, model.FlagUnsupportedClaims)
	}
	if len(gen.hardClaims) > 0 {
		flags = append(flags, model.FlagComputationalIntractable)
	}
	if !pre.scopeDefined {
		flags = append(flags, model.FlagUndefinedScope)
	}
	if pre.ambiguityScore > 0.1 {
		flags = append(flags, model.FlagHighAmbiguity)
	}
	if !pre.hasAbstentions && qa.singletonRate > 0.1 {
		flags = append(flags, model.FlagMissingUncertaintyAck)
	}
	if qa.biases.confirmation {
		flags = append(flags, model.FlagConfirmationBias)
	}
	if qa.biases.recency {
		flags = append(flags, model.FlagRecencyBias)
	}
	if qa.biases.geographic {
		flags = append(flags, model.FlagGeographicBias)
	}

	return flags
}

// recommendations generates advisory strings. Trigger conditions are
// deliberately softer than the corresponding flags (e.g. the validation
// ratio warning fires below 2.0 while the flag fires below 1.0); keep the
// thresholds distinct.
func (v *Validator) recommendations(pre preValidation, gen generationAssessment, qa qualityScores) []string {
	var recs []string

	if qa.singletonRate > v.cfg.SingletonThreshold {
		recs = append(recs, fmt.Sprintf(
			"High singleton rate (%.2f%%). Add cross-validation from additional sources.",
			qa.singletonRate*100))
	}

	if qa.validationRatio < 2.0 {
		recs = append(recs,
			"Validation ratio below 2:1. Increase supported claims or remove unsupported assertions.")
	}

	if gen.distribution[model.ConfidenceUncertain] > gen.distribution[model.ConfidenceHigh] {
		recs = append(recs,
			"More uncertain claims than high-confidence claims. Consider abstaining on uncertain topics.")
	}

	if len(gen.hardClaims) > 0 {
		recs = append(recs,
			"Contains computationally hard claims. Acknowledge computational limitations explicitly.")
	}

	if qa.biases.any() {
		var kinds []string
		if qa.biases.confirmation {
			kinds = append(kinds, "confirmation bias")
		}
		if qa.biases.recency {
			kinds = append(kinds, "recency bias")
		}
		if qa.biases.geographic {
			kinds = append(kinds, "geographic bias")
		}
		recs = append(recs, fmt.Sprintf(
			"Detected potential biases: %s. Review for balanced perspective.",
			strings.Join(kinds, ", ")))
	}

	if !pre.hasAbstentions && qa.singletonRate > 0.1 {
		recs = append(recs,
			"Consider adding explicit uncertainty acknowledgments for low-confidence claims.")
	}

	return recs
}
