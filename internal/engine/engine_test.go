package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lithium-validation/lithium/internal/model"
)

func TestSegmentClaims_Basic(t *testing.T) {
	claims := SegmentClaims("First claim. Second claim! Third claim? ")

	want := []string{"First claim", "Second claim", "Third claim"}
	if diff := cmp.Diff(want, claims); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentClaims_PunctuationRuns(t *testing.T) {
	claims := SegmentClaims("Really?! Are you sure... Yes.")

	want := []string{"Really", "Are you sure", "Yes"}
	if diff := cmp.Diff(want, claims); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentClaims_Empty(t *testing.T) {
	if claims := SegmentClaims(""); len(claims) != 0 {
		t.Errorf("expected no claims for empty text, got %v", claims)
	}
	if claims := SegmentClaims("... !!! ???"); len(claims) != 0 {
		t.Errorf("expected no claims for punctuation-only text, got %v", claims)
	}
}

func TestSegmentSubstantialClaims_DropsShortFragments(t *testing.T) {
	claims := SegmentSubstantialClaims("Yes. This fragment is long enough to keep around. No.")

	want := []string{"This fragment is long enough to keep around"}
	if diff := cmp.Diff(want, claims); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyClaim_PriorityOrder(t *testing.T) {
	tests := []struct {
		claim string
		want  model.ClaimType
	}{
		{"The data shows a clear trend", model.ClaimTypeEmpirical},
		{"Recent research confirms the effect", model.ClaimTypeEmpirical},
		{"Therefore the market will consolidate", model.ClaimTypeInferential},
		{"This implies a causal link", model.ClaimTypeInferential},
		{"The outcome might differ in practice", model.ClaimTypeHypothetical},
		{"We compute the shortest path", model.ClaimTypeComputational},
		{"The sky is blue", model.ClaimTypeArbitrary},
		// Empirical wins over hypothetical when both keyword sets match.
		{"The study suggests results might vary", model.ClaimTypeEmpirical},
		// Inferential wins over hypothetical.
		{"Thus the system could fail", model.ClaimTypeInferential},
	}

	for _, tt := range tests {
		if got := ClassifyClaim(tt.claim); got != tt.want {
			t.Errorf("ClassifyClaim(%q) = %v, want %v", tt.claim, got, tt.want)
		}
	}
}

func TestSupportCount_HalfKeywordThreshold(t *testing.T) {
	claim := "Renewable energy adoption accelerated worldwide"
	// Key words: renewable, energy, adoption, accelerated, worldwide.

	sources := []string{
		"Reports on renewable energy adoption trends",             // 3/5 matches
		"A cookbook about regional pastry techniques",             // 0/5
		"Worldwide energy markets saw accelerated transitions",    // 3/5
		"The renewable sector grew, adoption accelerated broadly", // 3/5
	}

	if got := SupportCount(claim, sources); got != 3 {
		t.Errorf("SupportCount = %d, want 3", got)
	}
}

func TestSupportCount_TooFewKeyWords(t *testing.T) {
	// "is" and "blue" leave a single key word after filtering; such claims
	// never receive support.
	if got := SupportCount("Skies stay blue", []string{"Skies stay blue"}); got != 0 {
		t.Errorf("SupportCount = %d, want 0 for claim with <2 key words", got)
	}
}

func TestSupportCount_StopwordsExcluded(t *testing.T) {
	// All candidate words are stopwords or too short: no key words, no support.
	if got := SupportCount("that this with from", []string{"that this with from"}); got != 0 {
		t.Errorf("SupportCount = %d, want 0", got)
	}
}

func TestSupportCount_MonotonicInSources(t *testing.T) {
	claim := "Quarterly revenue growth exceeded analyst projections"
	pool := []string{
		"Revenue growth exceeded projections this quarter",
		"Unrelated text about gardening",
		"Analyst projections for quarterly revenue were conservative",
		"Another unrelated fragment",
		"Growth exceeded all analyst projections",
	}

	prev := 0
	for i := range pool {
		got := SupportCount(claim, pool[:i+1])
		if got < prev {
			t.Fatalf("support count decreased from %d to %d after adding source %d", prev, got, i)
		}
		prev = got
	}
}

func TestAnalyzeClaims(t *testing.T) {
	content := "Data shows the regional program expanded over the reporting period. " +
		"The survey concluded regional output doubled across distant markets. Ok."
	sources := []string{
		"Data shows the regional program expanded over the reporting period.",
		"Data shows the regional program expanded over the reporting period.",
		"Data shows the regional program expanded over the reporting period.",
	}

	want := []model.Claim{
		{
			Text:         "Data shows the regional program expanded over the reporting period",
			Type:         model.ClaimTypeEmpirical,
			Confidence:   model.ConfidenceHigh,
			SupportCount: 3,
		},
		{
			Text:         "The survey concluded regional output doubled across distant markets",
			Type:         model.ClaimTypeArbitrary,
			Confidence:   model.ConfidenceUncertain,
			SupportCount: 0,
		},
	}

	got := AnalyzeClaims(content, sources)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignConfidence_Total(t *testing.T) {
	// Every (type, support) pair must map to exactly one tier.
	for _, claimType := range model.ClaimTypes {
		for support := 0; support <= 5; support++ {
			level := AssignConfidence(claimType, support)
			switch level {
			case model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow, model.ConfidenceUncertain:
			default:
				t.Fatalf("AssignConfidence(%v, %d) = %v, not a valid tier", claimType, support, level)
			}
		}
	}
}

func TestAssignConfidence_EmpiricalGate(t *testing.T) {
	tests := []struct {
		claimType model.ClaimType
		support   int
		want      model.ConfidenceLevel
	}{
		{model.ClaimTypeEmpirical, 3, model.ConfidenceHigh},
		{model.ClaimTypeEmpirical, 4, model.ConfidenceHigh},
		// A 3-support non-empirical claim falls through to MEDIUM, not HIGH.
		{model.ClaimTypeInferential, 3, model.ConfidenceMedium},
		{model.ClaimTypeArbitrary, 3, model.ConfidenceMedium},
		{model.ClaimTypeEmpirical, 2, model.ConfidenceMedium},
		{model.ClaimTypeHypothetical, 1, model.ConfidenceLow},
		{model.ClaimTypeComputational, 0, model.ConfidenceUncertain},
	}

	for _, tt := range tests {
		if got := AssignConfidence(tt.claimType, tt.support); got != tt.want {
			t.Errorf("AssignConfidence(%v, %d) = %v, want %v", tt.claimType, tt.support, got, tt.want)
		}
	}
}

func TestValidate_EmptyContent(t *testing.T) {
	v := New(model.ValidationConfig{})
	result := v.Validate("", model.Metadata{})

	if result.SingletonRate != 0 {
		t.Errorf("singleton rate = %v, want 0 for zero claims", result.SingletonRate)
	}
	if len(result.ConfidenceDistribution) != 0 {
		t.Errorf("confidence distribution = %v, want empty", result.ConfidenceDistribution)
	}
	if result.Passed {
		t.Error("empty content must not pass validation")
	}
}

func TestValidate_DistributionSumsToClaimCount(t *testing.T) {
	v := New(model.ValidationConfig{})
	content := "The data shows growth. Therefore margins improve. The sky is blue. Results might vary."
	result := v.Validate(content, model.Metadata{})

	total := 0
	for _, count := range result.ConfidenceDistribution {
		total += count
	}
	if total != 4 {
		t.Errorf("distribution counts sum to %d, want 4", total)
	}
}

func TestValidate_UnsupportedAbsolutes(t *testing.T) {
	// Scenario: plain assertions with no sources and absolute language.
	content := "The sky is blue. Water boils at 100 degrees Celsius. This is definitely true and always happens."
	v := New(model.ValidationConfig{})
	result := v.Validate(content, model.Metadata{})

	if result.Passed {
		t.Error("expected validation to fail")
	}
	if result.SingletonRate != 1.0 {
		t.Errorf("singleton rate = %v, want 1.0", result.SingletonRate)
	}
	if got := result.ConfidenceDistribution[model.ConfidenceUncertain.String()]; got != 3 {
		t.Errorf("UNCERTAIN count = %d, want 3 (no sources supplied)", got)
	}

	wantFlags := []string{
		model.FlagHighSingletonRate,
		model.FlagPoorValidationRatio,
		model.FlagUnsupportedClaims,
		model.FlagUndefinedScope,
		model.FlagMissingUncertaintyAck,
		model.FlagConfirmationBias,
	}
	if diff := cmp.Diff(wantFlags, result.ValidationFlags); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmpiricalClaimWithStrongSupport(t *testing.T) {
	content := "Data shows X increases Y."
	source := "The data shows that X increases Y in every trial"
	meta := model.Metadata{Sources: []string{source, source, source}}

	if got := SupportCount("Data shows X increases Y", meta.Sources); got != 3 {
		t.Fatalf("SupportCount = %d, want 3", got)
	}

	v := New(model.ValidationConfig{})
	result := v.Validate(content, meta)

	if got := result.ConfidenceDistribution[model.ConfidenceHigh.String()]; got != 1 {
		t.Errorf("HIGH count = %d, want 1 (empirical claim with 3 supports)", got)
	}
}

func TestValidate_AbstentionSuppressesUncertaintyFlag(t *testing.T) {
	content := "We cannot determine the exact cause. Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda measurement."
	v := New(model.ValidationConfig{})
	result := v.Validate(content, model.Metadata{})

	if result.SingletonRate != 1.0 {
		t.Fatalf("singleton rate = %v, want 1.0", result.SingletonRate)
	}

	for _, flag := range result.ValidationFlags {
		if flag == model.FlagMissingUncertaintyAck {
			t.Error("MISSING_UNCERTAINTY_ACKNOWLEDGMENT must be absent when the text abstains")
		}
	}

	found := false
	for _, flag := range result.ValidationFlags {
		if flag == model.FlagHighSingletonRate {
			found = true
		}
	}
	if !found {
		t.Error("expected HIGH_SINGLETON_RATE flag for singleton rate 1.0")
	}
}

func TestValidate_WellSupportedContentPasses(t *testing.T) {
	content := "Specifically within scope, research evidence confirms adoption rates. " +
		"The study data shows consistent growth patterns. " +
		"This suggests stable outcomes, though we cannot verify minor details."
	// Supplying the content itself as each source makes every claim fully
	// supported; support count 3 across the board.
	meta := model.Metadata{Sources: []string{content, content, content}}

	v := New(model.ValidationConfig{})
	result := v.Validate(content, meta)

	if !result.Passed {
		t.Errorf("expected pass, got score=%v singleton=%v flags=%v",
			result.OverallScore, result.SingletonRate, result.ValidationFlags)
	}
	if result.HallucinationRisk != model.RiskLow {
		t.Errorf("risk = %v, want LOW", result.HallucinationRisk)
	}
	if result.OverallScore < 0.7 {
		t.Errorf("overall score = %v, want >= 0.7", result.OverallScore)
	}
}

func TestValidate_RiskIndependentOfVerdict(t *testing.T) {
	// Unsupported absolute assertions: fails with HIGH risk.
	v := New(model.ValidationConfig{})
	result := v.Validate("Quantum widgets always outperform classical widgets everywhere.", model.Metadata{})

	if result.Passed {
		t.Error("expected fail")
	}
	if result.HallucinationRisk != model.RiskHigh {
		t.Errorf("risk = %v, want HIGH", result.HallucinationRisk)
	}
}

func TestValidate_RecommendationThresholdSofterThanFlag(t *testing.T) {
	// Two claims, one supported: validation ratio = 1/2 + ... concretely
	// (2-1)/(1+1) = 0.5, which trips both the flag (<1.0) and the
	// recommendation (<2.0). Three supported of four gives ratio
	// (4-1)/(1+1) = 1.5: recommendation fires, flag does not.
	content := "Solar capacity expanded across northern regions. " +
		"Wind generation doubled during recent deployments. " +
		"Battery storage costs declined through efficiency improvements. " +
		"Unicorn sightings increased dramatically yesterday."
	source := "Solar capacity expanded while wind generation doubled during deployments; " +
		"battery storage costs declined through efficiency improvements in northern regions"
	meta := model.Metadata{Sources: []string{source, source}}

	v := New(model.ValidationConfig{})
	result := v.Validate(content, meta)

	for _, flag := range result.ValidationFlags {
		if flag == model.FlagPoorValidationRatio {
			t.Error("POOR_VALIDATION_RATIO must not fire at ratio 1.5")
		}
	}

	foundRec := false
	for _, rec := range result.Recommendations {
		if rec == "Validation ratio below 2:1. Increase supported claims or remove unsupported assertions." {
			foundRec = true
		}
	}
	if !foundRec {
		t.Errorf("expected ratio recommendation at 1.5, got %v", result.Recommendations)
	}
}

func TestAmbiguityScore_TokenMatch(t *testing.T) {
	// Hedge words count as whole tokens only; "might," with punctuation
	// attached does not match.
	if got := ambiguityScore("maybe perhaps certain"); got != 2.0/3.0 {
		t.Errorf("ambiguityScore = %v, want %v", got, 2.0/3.0)
	}
	if got := ambiguityScore(""); got != 0 {
		t.Errorf("ambiguityScore('') = %v, want 0", got)
	}
}

func TestDetectBiases(t *testing.T) {
	tests := []struct {
		content string
		want    biasChecks
	}{
		{"This always works", biasChecks{confirmation: true}},
		{"The latest cutting-edge framework", biasChecks{recency: true}},
		{"Markets in america and europe diverged", biasChecks{geographic: true}},
		{"A single mention of asia", biasChecks{}},
		{"Plain neutral text", biasChecks{}},
	}

	for _, tt := range tests {
		if got := detectBiases(tt.content); got != tt.want {
			t.Errorf("detectBiases(%q) = %+v, want %+v", tt.content, got, tt.want)
		}
	}
}

func TestIsComputationallyHard(t *testing.T) {
	if !IsComputationallyHard("Our system can break encryption in seconds") {
		t.Error("expected hard claim to be flagged")
	}
	if !IsComputationallyHard("We guarantee optimal routing for any fleet") {
		t.Error("expected hard claim to be flagged")
	}
	if IsComputationallyHard("The report summarizes quarterly sales") {
		t.Error("plain claim must not be flagged")
	}
}

func TestScopeDefined(t *testing.T) {
	if !scopeDefined("The analysis is limited to Q3 results", model.Metadata{}) {
		t.Error("scope language in text should define scope")
	}
	if !scopeDefined("Plain text", model.Metadata{Scope: "Q3 revenue"}) {
		t.Error("metadata scope should define scope")
	}
	if scopeDefined("Plain text", model.Metadata{}) {
		t.Error("no scope language and no metadata: scope undefined")
	}
}
