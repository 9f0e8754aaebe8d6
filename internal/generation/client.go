package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/jukebox-api/internal/llm"
	"github.com/Conceptual-Machines/jukebox-api/internal/prompt"
)

// DefaultAttemptTimeout bounds a single provider call
const DefaultAttemptTimeout = 9 * time.Second

// Client issues one structured generation request against a provider
type Client struct {
	builder *prompt.Builder
	timeout time.Duration
}

// CallResult is the raw text returned by a provider plus its token usage
type CallResult struct {
	Text  string
	Usage llm.Usage
}

// NewClient creates a generation client. A non-positive timeout falls back
// to DefaultAttemptTimeout.
func NewClient(builder *prompt.Builder, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	if builder == nil {
		builder = prompt.NewPromptBuilder()
	}
	return &Client{builder: builder, timeout: timeout}
}

// Timeout returns the per-attempt deadline
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Call sends the prompt to provider and returns its raw text. Missing
// credentials are reported as llm.ErrNotConfigured before any request is
// made; an expired deadline is reported as *llm.TimeoutError.
func (c *Client) Call(ctx context.Context, provider llm.Provider, userPrompt string) (*CallResult, error) {
	if !provider.Configured() {
		return nil, llm.ErrNotConfigured
	}

	systemPrompt, err := c.builder.BuildSystemPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to build system prompt: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := provider.Generate(attemptCtx, &llm.GenerationRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   c.builder.BuildUserPrompt(userPrompt),
		OutputSchema: llm.GetSongOutputSchema(),
	})
	if err != nil {
		// The parent context being cancelled is not a provider timeout
		deadlineHit := errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
		if deadlineHit && ctx.Err() == nil {
			return nil, &llm.TimeoutError{Provider: provider.Model(), After: c.timeout}
		}
		return nil, err
	}
	if resp == nil || resp.Text == "" {
		return nil, llm.ErrEmptyResponse
	}

	return &CallResult{Text: resp.Text, Usage: resp.Usage}, nil
}
