package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	mimeTypeJSON       = "application/json"
	geminiUserRole     = "user"
)

// GeminiConfig configures a single-model Gemini provider
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint (tests, proxies)
	BaseURL string
	// Limiter is shared by every Gemini model so they draw from one quota
	Limiter *rate.Limiter
}

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewGeminiProvider creates a new Gemini provider. Without an API key the
// provider is returned unconfigured and never touches the network.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	p := &GeminiProvider{
		model:   cfg.Model,
		limiter: cfg.Limiter,
	}
	if cfg.APIKey == "" {
		return p, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Model returns the Gemini model id
func (p *GeminiProvider) Model() string {
	return p.model
}

// Configured reports whether an API key was supplied
func (p *GeminiProvider) Configured() bool {
	return p.client != nil
}

// Generate implements non-streaming generation using Gemini's API
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	startTime := time.Now()
	log.Printf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s)", p.model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", p.model)
	transaction.SetTag("provider", providerNameGemini)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			transaction.SetTag("success", "false")
			// Wait gives up early when the next token lands past the deadline
			if ctx.Err() == nil {
				if _, ok := ctx.Deadline(); ok {
					err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
				}
			}
			return nil, fmt.Errorf("gemini rate limit wait: %w", err)
		}
	}

	contents := []*genai.Content{{
		Role:  geminiUserRole,
		Parts: []*genai.Part{{Text: request.UserPrompt}},
	}}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		},
	}
	if request.OutputSchema != nil {
		config.ResponseMIMEType = mimeTypeJSON
		config.ResponseSchema = songSchemaToGemini()
	}

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	apiDuration := time.Since(startTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		if httpErr := geminiHTTPError(p.model, err); httpErr != nil {
			return nil, httpErr
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := geminiText(result)
	log.Printf("📥 GEMINI RESPONSE: model=%s output_length=%d duration=%v", p.model, len(text), apiDuration)
	if strings.TrimSpace(text) == "" {
		transaction.SetTag("success", "false")
		return nil, ErrEmptyResponse
	}

	response := &GenerationResponse{Text: text}
	if result.UsageMetadata != nil {
		response.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			response.Usage.InputTokens, response.Usage.OutputTokens, response.Usage.TotalTokens)
	}

	transaction.SetTag("success", "true")
	return response, nil
}

// geminiText concatenates the text parts of the first candidate
func geminiText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}
	candidate := result.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// geminiHTTPError maps a genai API error onto ProviderHTTPError
func geminiHTTPError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderHTTPError{Provider: model, Status: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ProviderHTTPError{Provider: model, Status: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return nil
}
