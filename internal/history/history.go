// Package history collects ValidationResults across calls and derives
// aggregate statistics. The log is append-only and safe for concurrent use;
// tool handlers share one instance per server.
package history

import (
	"sort"
	"sync"

	"github.com/lithium-validation/lithium/internal/model"
)

// Log is an ordered record of past validation results.
type Log struct {
	mu      sync.Mutex
	results []model.ValidationResult
}

// NewLog creates an empty history log.
func NewLog() *Log {
	return &Log{}
}

// Append records a result. Results are stored in arrival order.
func (l *Log) Append(result model.ValidationResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
}

// Len returns the number of recorded results.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}

// FlagCount is one entry of the most-frequent-flags ranking.
type FlagCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// Stats summarizes the full history.
type Stats struct {
	TotalValidations     int                     `json:"total_validations"`
	Passed               int                     `json:"passed"`
	Failed               int                     `json:"failed"`
	PassRate             float64                 `json:"pass_rate"`
	AverageScore         float64                 `json:"average_score"`
	AverageSingletonRate float64                 `json:"average_singleton_rate"`
	RiskDistribution     map[model.RiskLevel]int `json:"risk_distribution"`
	CommonIssues         []FlagCount             `json:"common_issues"` // Top 5, most frequent first
}

// Stats computes aggregate statistics over the log. Returns ok=false when
// the log is empty.
func (l *Log) Stats() (Stats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.results) == 0 {
		return Stats{}, false
	}

	stats := Stats{
		TotalValidations: len(l.results),
		RiskDistribution: map[model.RiskLevel]int{
			model.RiskLow:    0,
			model.RiskMedium: 0,
			model.RiskHigh:   0,
		},
	}

	flagCounts := make(map[string]int)
	var scoreSum, singletonSum float64

	for _, r := range l.results {
		if r.Passed {
			stats.Passed++
		}
		scoreSum += r.OverallScore
		singletonSum += r.SingletonRate
		stats.RiskDistribution[r.HallucinationRisk]++
		for _, flag := range r.ValidationFlags {
			flagCounts[flag]++
		}
	}

	total := float64(len(l.results))
	stats.Failed = stats.TotalValidations - stats.Passed
	stats.PassRate = float64(stats.Passed) / total
	stats.AverageScore = scoreSum / total
	stats.AverageSingletonRate = singletonSum / total
	stats.CommonIssues = topFlags(flagCounts, 5)

	return stats, true
}

// topFlags ranks flags by frequency, ties broken alphabetically for
// deterministic output.
func topFlags(counts map[string]int, n int) []FlagCount {
	ranked := make([]FlagCount, 0, len(counts))
	for flag, count := range counts {
		ranked = append(ranked, FlagCount{Flag: flag, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Flag < ranked[j].Flag
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
