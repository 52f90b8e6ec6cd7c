package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/nfarrow/recoup/internal/model"
)

// NewProvider creates a provider based on configuration.
// An empty provider name disables extraction and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		return NewOpenAIProvider(config)
	case "anthropic", "claude":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		return NewAnthropicProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "", "none", "disabled":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown extraction provider: %s", config.Provider)
	}
}

// ConfigFromModel converts the application-level extraction section into
// the provider config this package consumes.
func ConfigFromModel(c model.ExtractionConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}
