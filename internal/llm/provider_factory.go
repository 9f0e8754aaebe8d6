package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ChainConfig lists the credentials and models used to build a provider chain
type ChainConfig struct {
	GeminiAPIKey        string
	GeminiModels        []string
	GeminiBaseURL       string
	GeminiRatePerMinute int

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

// ProviderFactory creates providers based on model name
type ProviderFactory struct {
	cfg           ChainConfig
	geminiLimiter *rate.Limiter
}

// NewProviderFactory creates a new provider factory. All Gemini providers it
// creates share one rate limiter.
func NewProviderFactory(cfg ChainConfig) *ProviderFactory {
	f := &ProviderFactory{cfg: cfg}
	if cfg.GeminiRatePerMinute > 0 {
		interval := time.Minute / time.Duration(cfg.GeminiRatePerMinute)
		f.geminiLimiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return f
}

// GetProvider returns the provider for a model, inferred from its name
func (f *ProviderFactory) GetProvider(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(modelLower, "gemini-"):
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:  f.cfg.GeminiAPIKey,
			Model:   model,
			BaseURL: f.cfg.GeminiBaseURL,
			Limiter: f.geminiLimiter,
		})
	case strings.HasPrefix(modelLower, "gpt-"):
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  f.cfg.OpenAIAPIKey,
			Model:   model,
			BaseURL: f.cfg.OpenAIBaseURL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown model: %s (allowed prefixes: gemini-, gpt-)", model)
	}
}

// BuildChain returns providers in priority order: every configured Gemini
// model, then the OpenAI model when an OpenAI key is present.
func (f *ProviderFactory) BuildChain(ctx context.Context) ([]Provider, error) {
	models := append([]string{}, f.cfg.GeminiModels...)
	if f.cfg.OpenAIAPIKey != "" {
		openaiModel := f.cfg.OpenAIModel
		if openaiModel == "" {
			openaiModel = defaultOpenAIModel
		}
		models = append(models, openaiModel)
	}

	chain := make([]Provider, 0, len(models))
	for _, model := range models {
		provider, err := f.GetProvider(ctx, model)
		if err != nil {
			return nil, err
		}
		chain = append(chain, provider)
	}
	return chain, nil
}
