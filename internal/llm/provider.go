// Package llm talks to the external extraction service. The service is an
// opaque collaborator: it receives document or chat text and returns the raw
// JSON payload of the extraction contract. Everything it returns goes
// through the validation boundary before the core sees it.
package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for extraction providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract asks the service to pull claim facts out of the given text
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for one extraction call
type ExtractRequest struct {
	// Text is the document text or chat turn to analyze
	Text string

	// SourceName is a free-text pointer to the origin (filename, chat turn)
	SourceName string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExtractResponse contains the service's raw output
type ExtractResponse struct {
	// RawJSON is the opaque extraction payload, still unvalidated
	RawJSON []byte

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds extraction provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   60,
		MaxTokens: 2000,
	}
}

// BuildPrompt constructs the default extraction prompt. The contract keys
// and enums are spelled out so the validation boundary has a fighting
// chance; anything off-contract is discarded there, not here.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`You are extracting facts about a debt claim from the text below. Respond with a single JSON object and nothing else.

Allowed keys (all optional - omit anything the text does not state):
- "claimant", "defendant": objects with "name", "address", "city", "county", "postcode", "phone", "email", "type" (individual | business | sole-trader), "companyNumber"
- "invoice": object with "invoiceNumber", "dateIssued", "dueDate", "totalAmount", "currency", "description"
- "timeline": array of {"date", "description", "type"} where type is one of contract, service_delivered, invoice, payment_due, part_payment, chaser, lba_sent, acknowledgment, communication
- "lbaStatus": free text on whether a letter before action was sent
- "recommendedDocument": free text, your view of the next document
- "documentReason": why
- "confidence": 0-100, your overall confidence in this extraction

RULES:
1. Never invent values. Omit fields the text does not support.
2. Dates as written in the text are fine; do not guess a year.
3. Do not wrap the JSON in markdown fences or commentary.

TEXT:
%s`, text)
}
