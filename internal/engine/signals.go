package engine

import (
	"regexp"
	"strings"

	"github.com/lithium-validation/lithium/internal/model"
)

// Hedge words counted toward the ambiguity score. Matched as whole
// whitespace-split tokens, so "might," with trailing punctuation does not
// count.
var hedgeWords = map[string]struct{}{
	"maybe": {}, "perhaps": {}, "might": {}, "could": {}, "possibly": {},
	"somewhat": {}, "relatively": {}, "fairly": {}, "quite": {},
}

var scopeIndicators = []string{
	"specifically", "limited to", "within", "scope", "boundaries", "constraints",
}

var abstentionPhrases = []string{
	"don't know", "uncertain", "cannot determine", "insufficient data",
	"requires further", "unable to", "beyond scope", "cannot verify",
}

// Phrases asserting solutions to known-intractable computational problems.
var hardIndicators = []string{
	"optimize", "solve np-hard", "factor large", "decrypt",
	"break encryption", "predict perfectly", "guarantee optimal",
}

var (
	confirmationTerms = []string{"always", "never", "all", "none", "every", "no one"}
	recencyTerms      = []string{"latest", "newest", "most recent", "cutting-edge", "state-of-the-art"}
	geographicTerms   = []string{"america", "europe", "asia", "western", "eastern"}
)

var (
	yearRe    = regexp.MustCompile(`\b\d{4}\b`)
	versionRe = regexp.MustCompile(`v\d+|\d+\.\d+`)
)

var timeMarkers = []string{"currently", "recently", "historically", "previously", "future"}

type biasChecks struct {
	confirmation bool
	recency      bool
	geographic   bool
}

// any reports whether at least one bias check fired.
func (b biasChecks) any() bool {
	return b.confirmation || b.recency || b.geographic
}

// ambiguityScore is the fraction of whitespace-split words that are hedge
// words. Zero for empty content.
func ambiguityScore(content string) float64 {
	words := strings.Fields(strings.ToLower(content))
	if len(words) == 0 {
		return 0
	}

	hedges := 0
	for _, w := range words {
		if _, ok := hedgeWords[w]; ok {
			hedges++
		}
	}
	return float64(hedges) / float64(len(words))
}

// scopeDefined reports whether the text carries scope language or the
// caller supplied an explicit scope.
func scopeDefined(content string, meta model.Metadata) bool {
	return containsAny(strings.ToLower(content), scopeIndicators) || meta.Scope != ""
}

func temporalMarkers(content string) temporalContext {
	lower := strings.ToLower(content)
	return temporalContext{
		hasDates:       yearRe.MatchString(content),
		hasTimeMarkers: containsAny(lower, timeMarkers),
		hasVersionInfo: versionRe.MatchString(content),
	}
}

// hasAbstentions reports whether the text explicitly acknowledges
// uncertainty somewhere.
func hasAbstentions(content string) bool {
	return containsAny(strings.ToLower(content), abstentionPhrases)
}

// IsComputationallyHard reports whether the claim asserts a solution to an
// intractable or impossible computational problem.
func IsComputationallyHard(claim string) bool {
	return containsAny(strings.ToLower(claim), hardIndicators)
}

func detectBiases(content string) biasChecks {
	lower := strings.ToLower(content)

	geoCount := 0
	for _, term := range geographicTerms {
		if strings.Contains(lower, term) {
			geoCount++
		}
	}

	return biasChecks{
		confirmation: containsAny(lower, confirmationTerms),
		recency:      containsAny(lower, recencyTerms),
		geographic:   geoCount >= 2,
	}
}
