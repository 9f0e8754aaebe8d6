package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCost(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		input  int
		output int
		want   float64
	}{
		{name: "gpt-4o-mini", model: "gpt-4o-mini", input: 1000, output: 1000, want: 0.00075},
		{name: "case insensitive", model: "GPT-4o", input: 1000, output: 0, want: 0.005},
		{name: "gemini", model: "gemini-2.0-flash", input: 2000, output: 1000, want: 0.0006},
		{name: "unknown model", model: "mystery-1", input: 1000, output: 1000, want: 0},
		{name: "no tokens", model: "gemini-2.5-flash", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateCost(tt.model, tt.input, tt.output), 1e-9)
		})
	}
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.000750", FormatCost(0.00075))
	assert.Equal(t, "$0.000000", FormatCost(0))
}
