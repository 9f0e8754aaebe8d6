package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGenerationAttempt records one provider attempt and its token usage
func (m *SentryMetrics) RecordGenerationAttempt(
	ctx context.Context, model string, duration time.Duration, success bool, inputTokens, outputTokens int,
) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "generation.provider_attempt")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("input_tokens", inputTokens)
	span.SetData("output_tokens", outputTokens)
	span.SetData("total_tokens", inputTokens+outputTokens)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Provider Attempt: %s", model)
}

// RecordFallback records that a request was answered from the fallback catalog
func (m *SentryMetrics) RecordFallback(ctx context.Context, reason string) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "generation.fallback")
	defer span.Finish()

	span.SetData("reason", reason)
	span.Status = sentry.SpanStatusOK
	span.Description = "Fallback Song Served"
}

// RecordPrioritization records a settled prioritization
func (m *SentryMetrics) RecordPrioritization(ctx context.Context, simulated bool, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "payment.settled")
	defer span.Finish()

	span.SetTag("simulated", fmt.Sprintf("%t", simulated))
	span.SetData("duration_ms", duration.Milliseconds())
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Prioritization: simulated=%t", simulated)
}
