package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config is the application configuration
type Config struct {
	Extraction  ExtractionConfig  `mapstructure:"extraction" yaml:"extraction"`
	Store       StoreConfig       `mapstructure:"store" yaml:"store"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Review      ReviewConfig      `mapstructure:"review" yaml:"review"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Extraction.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Concurrency.Validate(); err != nil {
		return err
	}
	return c.Review.Validate()
}

// ExtractionConfig configures the external extraction service
type ExtractionConfig struct {
	Provider  string `mapstructure:"provider" yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `mapstructure:"model" yaml:"model"`
	APIKey    string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout   int    `mapstructure:"timeout" yaml:"timeout"` // seconds
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// Validate validates the extraction configuration
func (c *ExtractionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.In("", "openai", "anthropic", "claude", "ollama")),
		validation.Field(&c.Timeout, validation.Min(0)),
		validation.Field(&c.MaxTokens, validation.Min(0)),
	)
}

// StoreConfig configures claim record persistence
type StoreConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir     string        `mapstructure:"dir" yaml:"dir"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"` // memory-layer TTL; disk records do not expire
}

// Validate validates the store configuration
func (c *StoreConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// ConcurrencyConfig bounds concurrent extraction work
type ConcurrencyConfig struct {
	ExtractWorkers    int     `mapstructure:"extract_workers" yaml:"extract_workers"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// Validate validates the concurrency configuration
func (c *ConcurrencyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ExtractWorkers, validation.Min(1)),
		validation.Field(&c.Burst, validation.Min(1)),
	)
}

// ReviewConfig configures the human-verification surface
type ReviewConfig struct {
	// VerificationThreshold is the confidence below which a field is listed
	// for claimant confirmation (0-100)
	VerificationThreshold int `mapstructure:"verification_threshold" yaml:"verification_threshold"`
}

// Validate validates the review configuration
func (c *ReviewConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.VerificationThreshold, validation.Min(0), validation.Max(100)),
	)
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `mapstructure:"verbose" yaml:"verbose"`
	IncludeFooter bool `mapstructure:"include_footer" yaml:"include_footer"`
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Provider:  "",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Store: StoreConfig{
			Enabled: true,
			Dir:     ".recoup/claims",
			TTL:     30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers:    4,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Review: ReviewConfig{
			VerificationThreshold: DefaultVerificationThreshold,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
