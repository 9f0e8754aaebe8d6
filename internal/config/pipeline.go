package config

import "time"

// PipelineConfig is the immutable subset of Config handed to the
// generation and payment constructors.
type PipelineConfig struct {
	GeminiAPIKey        string
	GeminiModels        []string
	GeminiRatePerMinute int
	OpenAIAPIKey        string
	OpenAIModel         string
	AttemptTimeout      time.Duration

	CircleAPIKey             string
	CircleAppID              string
	CircleBaseURL            string
	CircleDestinationAddress string
	SimulatedDelay           time.Duration
	DefaultAmount            string
}

// Pipeline snapshots the pipeline settings
func (c *Config) Pipeline() PipelineConfig {
	return PipelineConfig{
		GeminiAPIKey:             c.GeminiAPIKey,
		GeminiModels:             append([]string(nil), c.GeminiModels...),
		GeminiRatePerMinute:      c.GeminiRatePerMinute,
		OpenAIAPIKey:             c.OpenAIAPIKey,
		OpenAIModel:              c.OpenAIModel,
		AttemptTimeout:           c.GenerationTimeout,
		CircleAPIKey:             c.CircleAPIKey,
		CircleAppID:              c.CircleAppID,
		CircleBaseURL:            c.CircleBaseURL,
		CircleDestinationAddress: c.CircleDestinationAddress,
		SimulatedDelay:           c.PaymentSimulatedDelay,
		DefaultAmount:            c.PaymentDefaultAmount,
	}
}

// GeminiReady reports whether the Gemini key passes the shape check
func (p PipelineConfig) GeminiReady() bool {
	return geminiKeyValid(p.GeminiAPIKey)
}

// GenerationReady reports whether at least one provider has credentials
func (p PipelineConfig) GenerationReady() bool {
	return p.GeminiReady() || p.OpenAIAPIKey != ""
}

// PaymentReady reports whether real Circle transfers will be attempted
func (p PipelineConfig) PaymentReady() bool {
	return circleCredentialsValid(p.CircleAPIKey, p.CircleAppID)
}
