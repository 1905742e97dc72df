// Package engine implements the three-stage validation pipeline that scores
// free text for hallucination risk against a set of reference sources.
//
// The pipeline is deliberately lexical: claim extraction is sentence
// segmentation, and cross-source support is keyword overlap, not semantic
// entailment. These approximations are part of the scoring contract and are
// reproduced exactly.
package engine

import (
	"time"

	"github.com/lithium-validation/lithium/internal/model"
)

// Validator runs the validation pipeline. It holds only the two scoring
// thresholds; no text or claim state survives a call, so a Validator may be
// shared by concurrent callers as long as nobody mutates its config. Callers
// applying per-domain rules should build a fresh Validator per call instead.
type Validator struct {
	cfg model.ValidationConfig
}

// New creates a Validator with the given thresholds. Zero values fall back
// to the defaults (singleton threshold 0.2, minimum sources 2).
func New(cfg model.ValidationConfig) *Validator {
	if cfg.SingletonThreshold <= 0 {
		cfg.SingletonThreshold = 0.2
	}
	if cfg.MinimumSources <= 0 {
		cfg.MinimumSources = 2
	}
	return &Validator{cfg: cfg}
}

// Config returns the thresholds this Validator scores with.
func (v *Validator) Config() model.ValidationConfig {
	return v.cfg
}

// Validate scores content against the sources in meta and returns the
// immutable result record. It never fails: empty content yields a
// zero-claim result with every rate guarded to zero.
func (v *Validator) Validate(content string, meta model.Metadata) model.ValidationResult {
	pre := v.preValidation(content, meta)
	gen := v.assessGeneration(content, meta)
	qa := v.qualityAssurance(content, pre, gen)
	return v.compile(pre, gen, qa, time.Now())
}

// preValidation is stage 1: everything derivable from text and metadata
// before claims are individually scored.
type preValidation struct {
	claimTypes      map[model.ClaimType]int
	ambiguityScore  float64
	scopeDefined    bool
	temporal        temporalContext
	sourceCount     int
	hasAbstentions  bool
	singletonClaims []string
}

// generationAssessment is stage 2: per-claim confidence and support.
type generationAssessment struct {
	totalClaims  int
	distribution map[model.ConfidenceLevel]int
	unsupported  []string
	hardClaims   []string
}

// qualityScores is stage 3: the aggregate metrics the compiler consumes.
type qualityScores struct {
	singletonRate      float64
	validationRatio    float64
	confidenceWeighted float64
	biases             biasChecks
	riskNumeric        float64
}

type temporalContext struct {
	hasDates       bool
	hasTimeMarkers bool
	hasVersionInfo bool
}

func (v *Validator) preValidation(content string, meta model.Metadata) preValidation {
	claims := SegmentClaims(content)

	types := make(map[model.ClaimType]int, len(model.ClaimTypes))
	for _, t := range model.ClaimTypes {
		types[t] = 0
	}
	for _, claim := range claims {
		types[ClassifyClaim(claim)]++
	}

	var singletons []string
	for _, claim := range claims {
		if SupportCount(claim, meta.Sources) <= 1 {
			singletons = append(singletons, claim)
		}
	}

	return preValidation{
		claimTypes:      types,
		ambiguityScore:  ambiguityScore(content),
		scopeDefined:    scopeDefined(content, meta),
		temporal:        temporalMarkers(content),
		sourceCount:     len(meta.Sources),
		hasAbstentions:  hasAbstentions(content),
		singletonClaims: singletons,
	}
}

func (v *Validator) assessGeneration(content string, meta model.Metadata) generationAssessment {
	claims := SegmentClaims(content)

	out := generationAssessment{
		totalClaims:  len(claims),
		distribution: make(map[model.ConfidenceLevel]int),
	}

	for _, claim := range claims {
		support := SupportCount(claim, meta.Sources)
		claimType := ClassifyClaim(claim)

		out.distribution[AssignConfidence(claimType, support)]++

		if support < v.cfg.MinimumSources {
			out.unsupported = append(out.unsupported, claim)
		}
		if IsComputationallyHard(claim) {
			out.hardClaims = append(out.hardClaims, claim)
		}
	}

	return out
}

func (v *Validator) qualityAssurance(content string, pre preValidation, gen generationAssessment) qualityScores {
	qs := qualityScores{}

	if gen.totalClaims > 0 {
		qs.singletonRate = float64(len(pre.singletonClaims)) / float64(gen.totalClaims)
	}

	// The 2:1 rule. The +1 in the denominator is the unconditional
	// division-by-zero guard, not a bug.
	validated := gen.totalClaims - len(gen.unsupported)
	qs.validationRatio = float64(validated) / float64(len(gen.unsupported)+1)

	var weighted, total float64
	for level, count := range gen.distribution {
		weighted += level.Weight() * float64(count)
		total += float64(count)
	}
	if total > 0 {
		qs.confidenceWeighted = weighted / total
	}

	qs.biases = detectBiases(content)

	unsupportedRatio := float64(len(gen.unsupported)) / float64(gen.totalClaims+1)
	risk := qs.singletonRate*0.4 + unsupportedRatio*0.4 + (1-qs.confidenceWeighted)*0.2
	qs.riskNumeric = clamp01(risk)

	return qs
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
