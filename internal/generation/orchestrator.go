package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Conceptual-Machines/jukebox-api/internal/llm"
	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/observability"
)

// Recorder receives per-attempt metrics
type Recorder interface {
	RecordGenerationAttempt(ctx context.Context, model string, duration time.Duration, success bool, inputTokens, outputTokens int)
	RecordFallback(ctx context.Context, reason string)
}

// ProviderAttempt is the diagnostic record of one provider step
type ProviderAttempt struct {
	ProviderID string        `json:"providerId"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"duration"`
	Success    bool          `json:"success"`
	RawText    string        `json:"rawText,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Kind       string        `json:"kind,omitempty"`
}

// Result is the song produced by a run plus every attempt made
type Result struct {
	Song     models.GeneratedSong
	Attempts []ProviderAttempt
}

// Orchestrator tries providers in order until one yields a usable song
type Orchestrator struct {
	providers []llm.Provider
	client    *Client
	fallback  *FallbackSelector
	tracer    *observability.LangfuseClient
	recorder  Recorder
	now       func() time.Time
}

// OrchestratorConfig wires an Orchestrator. Only Providers is required.
type OrchestratorConfig struct {
	Providers []llm.Provider
	Client    *Client
	Fallback  *FallbackSelector
	Tracer    *observability.LangfuseClient
	Recorder  Recorder
}

// NewOrchestrator creates an orchestrator. Provider order is fixed here.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	o := &Orchestrator{
		providers: append([]llm.Provider(nil), cfg.Providers...),
		client:    cfg.Client,
		fallback:  cfg.Fallback,
		tracer:    cfg.Tracer,
		recorder:  cfg.Recorder,
		now:       time.Now,
	}
	if o.client == nil {
		o.client = NewClient(nil, DefaultAttemptTimeout)
	}
	if o.fallback == nil {
		o.fallback = NewFallbackSelector(nil, nil)
	}
	return o
}

// Providers returns the configured provider chain
func (o *Orchestrator) Providers() []llm.Provider {
	return o.providers
}

// Fallback returns the selector used when every provider fails
func (o *Orchestrator) Fallback() *FallbackSelector {
	return o.fallback
}

// Generate runs the provider chain for an already validated prompt
func (o *Orchestrator) Generate(ctx context.Context, promptText string) Result {
	var configured []llm.Provider
	for _, p := range o.providers {
		if p.Configured() {
			configured = append(configured, p)
		}
	}
	if len(configured) == 0 {
		logger.Warn("No generation provider configured, serving fallback", logger.Fields{
			"providers": len(o.providers),
		})
		return Result{Song: o.serveFallback(ctx, promptText, ReasonNotConfigured)}
	}

	trace := o.tracer.StartTrace(ctx, "jukebox.generate", map[string]interface{}{
		"prompt_length": len(promptText),
		"providers":     len(configured),
	})
	defer trace.Finish()

	attempts := make([]ProviderAttempt, 0, len(configured))
	for i, provider := range configured {
		attempt, raw := o.attempt(ctx, trace, i, provider, promptText)
		attempts = append(attempts, attempt)
		if !attempt.Success {
			continue
		}

		song, changed := Normalize(raw)
		providerID := provider.Model()
		song.Provenance = models.Provenance{
			IsReal:           true,
			ProviderID:       &providerID,
			GeneratedAt:      o.now().UTC(),
			PromptUsed:       promptText,
			NormalizedFields: changed,
		}
		logger.Info("Song generated", logger.Fields{
			"model":             providerID,
			"attempts":          len(attempts),
			"normalized_fields": len(changed),
		})
		return Result{Song: song, Attempts: attempts}
	}

	reason := joinReasons(attempts)
	logger.LogToSentry(sentry.LevelWarning, "All generation providers failed", logger.Fields{
		"attempts": len(attempts),
		"reason":   reason,
	})
	return Result{Song: o.serveFallback(ctx, promptText, reason), Attempts: attempts}
}

func (o *Orchestrator) attempt(
	ctx context.Context, trace *observability.Trace, position int, provider llm.Provider, promptText string,
) (ProviderAttempt, map[string]any) {
	span := sentry.StartSpan(ctx, "generation.attempt")
	span.SetTag("model", provider.Model())
	span.SetTag("provider", provider.Name())
	defer span.Finish()

	gen := trace.Generation("song.attempt", map[string]interface{}{
		"provider": provider.Name(),
		"position": position,
	})
	defer gen.Finish()

	attempt := ProviderAttempt{ProviderID: provider.Model(), StartedAt: o.now()}
	start := time.Now()

	var usage llm.Usage
	var raw map[string]any
	res, err := o.client.Call(span.Context(), provider, promptText)
	if err == nil {
		attempt.RawText = res.Text
		usage = res.Usage
		raw, err = ExtractJSON(res.Text)
	}
	attempt.Duration = time.Since(start)

	if err != nil {
		attempt.Reason = err.Error()
		attempt.Kind = attemptKind(err)
		span.Status = sentry.SpanStatusInternalError
		logger.Warn("Provider attempt failed", logger.Fields{
			"model":       provider.Model(),
			"kind":        attempt.Kind,
			"error":       attempt.Reason,
			"duration_ms": attempt.Duration.Milliseconds(),
		})
	} else {
		attempt.Success = true
		span.Status = sentry.SpanStatusOK
		logger.LogGenerationAttempt(span.Context(), provider.Model(), attempt.Duration, usage.AsMap(), logger.Fields{
			"provider": provider.Name(),
			"position": position,
			"cost":     observability.FormatCost(observability.CalculateCost(provider.Model(), usage.InputTokens, usage.OutputTokens)),
		})
	}

	gen.RecordAttempt(provider.Model(), promptText, attempt.RawText, usage.InputTokens, usage.OutputTokens, attempt.Reason)
	if o.recorder != nil {
		o.recorder.RecordGenerationAttempt(ctx, provider.Model(), attempt.Duration, attempt.Success, usage.InputTokens, usage.OutputTokens)
	}
	return attempt, raw
}

func (o *Orchestrator) serveFallback(ctx context.Context, promptText, reason string) models.GeneratedSong {
	if o.recorder != nil {
		o.recorder.RecordFallback(ctx, reason)
	}
	return o.fallback.Select(promptText, reason)
}

// attemptKind extends llm.Kind with the extraction failures
func attemptKind(err error) string {
	var malformed *MalformedJSONError
	switch {
	case errors.Is(err, ErrNoJSONFound):
		return "no_json"
	case errors.As(err, &malformed):
		return "malformed_json"
	default:
		return llm.Kind(err)
	}
}

func joinReasons(attempts []ProviderAttempt) string {
	reasons := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if !a.Success {
			reasons = append(reasons, fmt.Sprintf("%s: %s", a.ProviderID, a.Reason))
		}
	}
	return strings.Join(reasons, "; ")
}
