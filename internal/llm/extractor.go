package llm

import (
	"context"
	"fmt"
	"strings"
)

// Extractor wraps a provider and owns the call discipline around it:
// prompt construction, fence stripping, and the disabled-provider case.
type Extractor struct {
	provider Provider
	config   Config
}

// NewExtractor creates an extractor for the given configuration.
// A nil provider means extraction is disabled; IsEnabled reports that.
func NewExtractor(config Config) (*Extractor, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		provider: provider,
		config:   config,
	}, nil
}

// NewExtractorWithProvider builds an extractor around an existing provider.
// Used by tests and by callers that manage provider lifecycle themselves.
func NewExtractorWithProvider(provider Provider, config Config) *Extractor {
	return &Extractor{
		provider: provider,
		config:   config,
	}
}

// IsEnabled returns true if an extraction provider is configured
func (e *Extractor) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the active provider's name, or "none"
func (e *Extractor) ProviderName() string {
	if e.provider == nil {
		return "none"
	}
	return e.provider.Name()
}

// Extract sends text to the provider and returns the raw JSON payload.
// The payload is still unvalidated; the caller runs it through ParseRaw.
func (e *Extractor) Extract(ctx context.Context, text, sourceName string) (*ExtractResponse, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no extraction provider configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty input text")
	}

	req := ExtractRequest{
		Text:       text,
		SourceName: sourceName,
		Model:      e.config.Model,
		MaxTokens:  e.config.MaxTokens,
	}

	resp, err := e.provider.Extract(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return resp, nil
}

// StripFences removes a markdown code fence wrapper from model output.
// Models fenced the payload often enough that every provider runs its
// output through here before handing it to the validation boundary.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
