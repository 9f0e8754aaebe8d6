package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.enabled)

	// Disabled clients never reach AWS
	assert.NotPanics(t, func() {
		client.RecordAPIRequest("/api/generate", 200, time.Millisecond)
		client.RecordGenerationAttempt("gemini-2.5-flash", time.Second, true, 1, 2)
		client.RecordFallback()
		client.RecordPrioritization(true, time.Second)
	})
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	ctx := context.Background()

	assert.NotPanics(t, func() {
		r.RecordAPIRequest(ctx, "/api/generate", 200, time.Millisecond)
		r.RecordGenerationAttempt(ctx, "gemini-2.5-flash", time.Second, false, 0, 0)
		r.RecordFallback(ctx, "not-configured")
		r.RecordPrioritization(ctx, true, time.Second)
	})
}

func TestRecorder_SentryWithoutClient(t *testing.T) {
	cw, err := NewClient(context.Background(), "test")
	require.NoError(t, err)
	r := NewRecorder(NewSentryMetrics(), cw)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		r.RecordAPIRequest(ctx, "/api/prioritize", 500, time.Millisecond)
		r.RecordGenerationAttempt(ctx, "gpt-4o-mini", time.Second, true, 10, 20)
		r.RecordFallback(ctx, "gemini-2.5-flash: timeout")
		r.RecordPrioritization(ctx, false, 2*time.Second)
	})
}

func TestBoolToString(t *testing.T) {
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "false", boolToString(false))
}

func TestMetricHelpers(t *testing.T) {
	c := count("FallbackSongs", 1)
	assert.Equal(t, "FallbackSongs", c.name)
	assert.Equal(t, 1.0, c.value)
	assert.Equal(t, types.StandardUnitCount, c.unit)

	d := millis("APILatency", 1500*time.Millisecond)
	assert.Equal(t, 1500.0, d.value)
	assert.Equal(t, types.StandardUnitMilliseconds, d.unit)
}
