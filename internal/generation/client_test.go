package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/jukebox-api/internal/llm"
)

func TestClient_NotConfiguredSkipsNetwork(t *testing.T) {
	provider := &stubProvider{model: "gemini-2.5-flash", unconfigured: true, generateFunc: respondWith("{}")}
	client := NewClient(nil, time.Second)

	_, err := client.Call(context.Background(), provider, "chill beats")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, 0, provider.callCount())
}

func TestClient_Timeout(t *testing.T) {
	provider := &stubProvider{model: "gemini-2.5-flash", generateFunc: blockUntilDone}
	client := NewClient(nil, 30*time.Millisecond)

	start := time.Now()
	_, err := client.Call(context.Background(), provider, "chill beats")
	elapsed := time.Since(start)

	var timeoutErr *llm.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "got %v", err)
	assert.Equal(t, "gemini-2.5-flash", timeoutErr.Provider)
	assert.Less(t, elapsed, time.Second)
}

func TestClient_EarlyDeadlineRefusalIsTimeout(t *testing.T) {
	refused := fmt.Errorf("gemini rate limit wait: %w: %w", context.DeadlineExceeded, errors.New("rate: Wait(n=1) would exceed context deadline"))
	provider := &stubProvider{model: "gemini-2.5-flash", generateFunc: failWith(refused)}
	client := NewClient(nil, time.Second)

	_, err := client.Call(context.Background(), provider, "x")

	var timeoutErr *llm.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "got %v", err)
	assert.Equal(t, "timeout", llm.Kind(err))
	assert.Equal(t, time.Second, timeoutErr.After)
}

func TestClient_ParentCancellationIsNotTimeout(t *testing.T) {
	provider := &stubProvider{model: "gemini-2.5-flash", generateFunc: blockUntilDone}
	client := NewClient(nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Call(ctx, provider, "x")

	var timeoutErr *llm.TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_PassesBuiltPrompts(t *testing.T) {
	var got *llm.GenerationRequest
	provider := &stubProvider{model: "m", generateFunc: func(_ context.Context, r *llm.GenerationRequest) (*llm.GenerationResponse, error) {
		got = r
		return &llm.GenerationResponse{Text: `{"title":"A"}`}, nil
	}}

	res, err := NewClient(nil, time.Second).Call(context.Background(), provider, "lofi study")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"A"}`, res.Text)
	assert.Contains(t, got.UserPrompt, "lofi study")
	assert.NotEmpty(t, got.SystemPrompt)
	require.NotNil(t, got.OutputSchema)
}

func TestClient_EmptyResponse(t *testing.T) {
	provider := &stubProvider{model: "m", generateFunc: respondWith("")}
	_, err := NewClient(nil, time.Second).Call(context.Background(), provider, "x")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultAttemptTimeout, NewClient(nil, 0).Timeout())
}
