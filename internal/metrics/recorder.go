package metrics

import (
	"context"
	"time"
)

// Recorder fans pipeline events out to Sentry and CloudWatch. A nil
// Recorder or nil sink is a no-op.
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client
}

// NewRecorder combines the two metric sinks
func NewRecorder(s *SentryMetrics, cw *Client) *Recorder {
	return &Recorder{sentry: s, cloudwatch: cw}
}

// RecordAPIRequest records one HTTP request
func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
	}
}

// RecordGenerationAttempt records one provider attempt
func (r *Recorder) RecordGenerationAttempt(
	ctx context.Context, model string, duration time.Duration, success bool, inputTokens, outputTokens int,
) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordGenerationAttempt(ctx, model, duration, success, inputTokens, outputTokens)
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordGenerationAttempt(model, duration, success, inputTokens, outputTokens)
	}
}

// RecordFallback records a fallback song
func (r *Recorder) RecordFallback(ctx context.Context, reason string) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordFallback(ctx, reason)
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordFallback()
	}
}

// RecordPrioritization records a settled payment
func (r *Recorder) RecordPrioritization(ctx context.Context, simulated bool, duration time.Duration) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordPrioritization(ctx, simulated, duration)
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordPrioritization(simulated, duration)
	}
}
