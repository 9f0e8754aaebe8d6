package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	providerNameOpenAI = "openai"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIConfig configures a single-model OpenAI provider
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIProvider implements the Provider interface using OpenAI chat completions
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. The SDK's own retries are
// disabled; fallback across models is the orchestrator's job.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	p := &OpenAIProvider{model: model}
	if cfg.APIKey == "" {
		return p
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	p.client = &client
	return p
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Model returns the OpenAI model id
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Configured reports whether an API key was supplied
func (p *OpenAIProvider) Configured() bool {
	return p.client != nil
}

// Generate implements non-streaming generation using chat completions
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	startTime := time.Now()
	log.Printf("🎵 OPENAI GENERATION REQUEST STARTED (Model: %s)", p.model)

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", p.model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(startTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &ProviderHTTPError{Provider: p.model, Status: apiErr.StatusCode, Body: apiErr.Message}
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		transaction.SetTag("success", "false")
		return nil, ErrEmptyResponse
	}

	text := resp.Choices[0].Message.Content
	log.Printf("📥 OPENAI RESPONSE: model=%s output_length=%d duration=%v", p.model, len(text), apiDuration)

	transaction.SetTag("success", "true")
	return &GenerationResponse{
		Text: text,
		Usage: Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildRequestParams builds the chat completion request
func (p *OpenAIProvider) buildRequestParams(request *GenerationRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemPrompt),
			openai.UserMessage(request.UserPrompt),
		},
	}

	if request.OutputSchema != nil {
		schema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   request.OutputSchema.Name,
			Schema: request.OutputSchema.Schema,
		}
		if request.OutputSchema.Description != "" {
			schema.Description = openai.String(request.OutputSchema.Description)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schema},
		}
		log.Printf("📋 JSON SCHEMA CONFIGURED: %s", request.OutputSchema.Name)
	}

	return params
}
