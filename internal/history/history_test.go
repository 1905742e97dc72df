package history

import (
	"sync"
	"testing"

	"github.com/lithium-validation/lithium/internal/model"
)

func TestLog_StatsEmpty(t *testing.T) {
	log := NewLog()
	if _, ok := log.Stats(); ok {
		t.Error("empty log should report no statistics")
	}
}

func TestLog_Stats(t *testing.T) {
	log := NewLog()
	log.Append(model.ValidationResult{
		Passed: true, OverallScore: 0.8, SingletonRate: 0.1,
		HallucinationRisk: model.RiskLow,
		ValidationFlags:   []string{model.FlagUndefinedScope},
	})
	log.Append(model.ValidationResult{
		Passed: false, OverallScore: 0.4, SingletonRate: 0.5,
		HallucinationRisk: model.RiskHigh,
		ValidationFlags:   []string{model.FlagUndefinedScope, model.FlagHighSingletonRate},
	})
	log.Append(model.ValidationResult{
		Passed: false, OverallScore: 0.6, SingletonRate: 0.3,
		HallucinationRisk: model.RiskMedium,
		ValidationFlags:   []string{model.FlagUndefinedScope, model.FlagUnsupportedClaims},
	})

	stats, ok := log.Stats()
	if !ok {
		t.Fatal("expected statistics")
	}

	if stats.TotalValidations != 3 || stats.Passed != 1 || stats.Failed != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", stats.TotalValidations, stats.Passed, stats.Failed)
	}
	if stats.PassRate != 1.0/3.0 {
		t.Errorf("pass rate = %v, want 1/3", stats.PassRate)
	}
	if want := (0.8 + 0.4 + 0.6) / 3; stats.AverageScore != want {
		t.Errorf("average score = %v, want %v", stats.AverageScore, want)
	}
	if stats.RiskDistribution[model.RiskLow] != 1 ||
		stats.RiskDistribution[model.RiskMedium] != 1 ||
		stats.RiskDistribution[model.RiskHigh] != 1 {
		t.Errorf("risk distribution = %v", stats.RiskDistribution)
	}

	if len(stats.CommonIssues) == 0 || stats.CommonIssues[0].Flag != model.FlagUndefinedScope {
		t.Errorf("common issues = %v, want UNDEFINED_SCOPE ranked first", stats.CommonIssues)
	}
	if stats.CommonIssues[0].Count != 3 {
		t.Errorf("top flag count = %d, want 3", stats.CommonIssues[0].Count)
	}
}

func TestLog_TopFlagsCappedAtFive(t *testing.T) {
	log := NewLog()
	log.Append(model.ValidationResult{ValidationFlags: []string{
		model.FlagHighSingletonRate,
		model.FlagPoorValidationRatio,
		model.FlagUnsupportedClaims,
		model.FlagComputationalIntractable,
		model.FlagUndefinedScope,
		model.FlagHighAmbiguity,
		model.FlagConfirmationBias,
	}})

	stats, _ := log.Stats()
	if len(stats.CommonIssues) != 5 {
		t.Errorf("common issues = %d entries, want 5", len(stats.CommonIssues))
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(model.ValidationResult{Passed: true, HallucinationRisk: model.RiskLow})
		}()
	}
	wg.Wait()

	if log.Len() != 50 {
		t.Errorf("len = %d, want 50", log.Len())
	}
}
