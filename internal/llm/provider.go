package llm

import (
	"context"
)

// Provider defines the interface for text generation providers.
// One Provider instance serves one model; the model id is its identity
// in the fallback chain.
type Provider interface {
	// Generate sends a single request and returns the raw response text
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider family (e.g., "gemini", "openai")
	Name() string

	// Model returns the model identifier this provider calls
	Model() string

	// Configured reports whether a credential is present
	Configured() bool
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	SystemPrompt string
	UserPrompt   string
	// Structured output schema, honoured by providers that support it
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// GenerationResponse contains the raw text returned by the provider
type GenerationResponse struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

// Usage holds token accounting when the provider reports it
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// AsMap converts usage to the map shape used by logging and tracing
func (u Usage) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}
