package model

import "time"

// Config is the application configuration assembled from defaults, the
// config file, environment variables and CLI flags.
type Config struct {
	Validation  ValidationConfig       `yaml:"validation" mapstructure:"validation"`
	Domains     map[string]DomainRules `yaml:"domains" mapstructure:"domains"`
	Cache       CacheConfig            `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig      `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig              `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig           `yaml:"output" mapstructure:"output"`
}

// ValidationConfig holds the two thresholds the validation engine consumes.
type ValidationConfig struct {
	SingletonThreshold float64 `yaml:"singleton_threshold" mapstructure:"singleton_threshold"` // Max tolerated singleton rate for a pass
	MinimumSources     int     `yaml:"minimum_sources" mapstructure:"minimum_sources"`         // Sources required for a claim to count as supported
}

// DomainRules overrides the engine thresholds for a named domain. Zero
// values fall back to the base validation config.
type DomainRules struct {
	SingletonThreshold float64 `yaml:"singleton_threshold" mapstructure:"singleton_threshold"`
	MinimumSources     int     `yaml:"minimum_sources" mapstructure:"minimum_sources"`
}

// CacheConfig controls the transport-layer result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LLMConfig configures the optional advisory summarizer. The summary never
// affects scoring.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults, including the standard
// per-domain threshold overrides.
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			SingletonThreshold: 0.2,
			MinimumSources:     2,
		},
		Domains: map[string]DomainRules{
			"consulting": {SingletonThreshold: 0.15, MinimumSources: 3},
			"technical":  {SingletonThreshold: 0.2, MinimumSources: 2},
			"research":   {SingletonThreshold: 0.1, MinimumSources: 3},
			"general":    {SingletonThreshold: 0.2, MinimumSources: 2},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// RulesFor resolves the engine thresholds for a domain label. Unknown or
// empty domains get the base validation config.
func (c *Config) RulesFor(domain string) ValidationConfig {
	rules, ok := c.Domains[domain]
	if !ok {
		return c.Validation
	}
	resolved := c.Validation
	if rules.SingletonThreshold > 0 {
		resolved.SingletonThreshold = rules.SingletonThreshold
	}
	if rules.MinimumSources > 0 {
		resolved.MinimumSources = rules.MinimumSources
	}
	return resolved
}
