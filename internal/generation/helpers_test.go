package generation

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Conceptual-Machines/jukebox-api/internal/llm"
)

// stubProvider is a function-field implementation of llm.Provider
type stubProvider struct {
	model        string
	unconfigured bool
	calls        int32
	generateFunc func(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error)
}

func (s *stubProvider) Name() string     { return "stub" }
func (s *stubProvider) Model() string    { return s.model }
func (s *stubProvider) Configured() bool { return !s.unconfigured }

func (s *stubProvider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.generateFunc != nil {
		return s.generateFunc(ctx, request)
	}
	return nil, errors.New("no generateFunc")
}

func (s *stubProvider) callCount() int {
	return int(atomic.LoadInt32(&s.calls))
}

func respondWith(text string) func(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	return func(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
		return &llm.GenerationResponse{Text: text, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}}, nil
	}
}

func failWith(err error) func(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	return func(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
		return nil, err
	}
}

func blockUntilDone(ctx context.Context, _ *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
