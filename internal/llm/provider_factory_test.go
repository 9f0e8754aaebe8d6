package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFactory_GetProvider(t *testing.T) {
	factory := NewProviderFactory(ChainConfig{GeminiAPIKey: "AIza-key", OpenAIAPIKey: "sk-key"})
	ctx := context.Background()

	p, err := factory.GetProvider(ctx, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = factory.GetProvider(ctx, "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = factory.GetProvider(ctx, "claude-3")
	assert.Error(t, err)
}

func TestProviderFactory_BuildChain(t *testing.T) {
	tests := []struct {
		name       string
		cfg        ChainConfig
		wantModels []string
		configured bool
	}{
		{
			name:       "gemini only",
			cfg:        ChainConfig{GeminiAPIKey: "AIza-key", GeminiModels: []string{"gemini-2.5-flash", "gemini-2.0-flash"}},
			wantModels: []string{"gemini-2.5-flash", "gemini-2.0-flash"},
			configured: true,
		},
		{
			name:       "openai appended last",
			cfg:        ChainConfig{GeminiAPIKey: "AIza-key", GeminiModels: []string{"gemini-2.5-flash"}, OpenAIAPIKey: "sk"},
			wantModels: []string{"gemini-2.5-flash", "gpt-4o-mini"},
			configured: true,
		},
		{
			name:       "no keys keeps unconfigured gemini entries",
			cfg:        ChainConfig{GeminiModels: []string{"gemini-2.5-flash"}, GeminiRatePerMinute: 60},
			wantModels: []string{"gemini-2.5-flash"},
			configured: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewProviderFactory(tt.cfg).BuildChain(context.Background())
			require.NoError(t, err)

			var models []string
			for _, p := range chain {
				models = append(models, p.Model())
				assert.Equal(t, tt.configured, p.Configured())
			}
			assert.Equal(t, tt.wantModels, models)
		})
	}
}
