package engine

import "strings"

// Stopwords excluded from a claim's key words. Short function words carry no
// signal for overlap matching.
var supportStopwords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {}, "been": {},
}

// SupportCount returns how many of the sources lexically corroborate the
// claim. Monotonic in the source list: appending a source never lowers it.
func SupportCount(claim string, sources []string) int {
	count := 0
	for _, source := range sources {
		if claimInSource(claim, source) {
			count++
		}
	}
	return count
}

// claimInSource reports whether a single source supports the claim: at
// least half of the claim's key words (tokens longer than 4 characters,
// stopwords excluded) appear as substrings of the lowercased source. Claims
// with fewer than 2 key words never receive support.
//
// This is lexical overlap, not entailment. It has known false positives and
// negatives; the scoring contract depends on this exact behavior.
func claimInSource(claim, source string) bool {
	var keyWords []string
	for _, word := range strings.Fields(strings.ToLower(claim)) {
		if len(word) <= 4 {
			continue
		}
		if _, stop := supportStopwords[word]; stop {
			continue
		}
		keyWords = append(keyWords, word)
	}

	if len(keyWords) < 2 {
		return false
	}

	lowerSource := strings.ToLower(source)
	matches := 0
	for _, word := range keyWords {
		if strings.Contains(lowerSource, word) {
			matches++
		}
	}

	return float64(matches) >= float64(len(keyWords))*0.5
}
