package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONText_RoundTrip(t *testing.T) {
	text := "prefix ```json\n{\"title\":\"X\"}\n``` suffix"

	got, err := ExtractJSONText(text)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"X"}`, got)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]any
	}{
		{
			name: "bare object",
			text: `{"title":"A","bpm":120}`,
			want: map[string]any{"title": "A", "bpm": float64(120)},
		},
		{
			name: "label prefix",
			text: `JSON: {"title":"A"}`,
			want: map[string]any{"title": "A"},
		},
		{
			name: "prose and trailing punctuation",
			text: `Sure! Here is your song: {"title":"A","artist":"B"}. Enjoy!`,
			want: map[string]any{"title": "A", "artist": "B"},
		},
		{
			name: "plain fence",
			text: "```\n{\"mood\":\"calm\"}\n```",
			want: map[string]any{"mood": "calm"},
		},
		{
			name: "nested object uses outermost braces",
			text: `{"title":"A","extra":{"k":"v"}}`,
			want: map[string]any{"title": "A", "extra": map[string]any{"k": "v"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, text := range []string{"", "no braces at all", "} backwards {", "```json\n```"} {
		_, err := ExtractJSON(text)
		assert.ErrorIs(t, err, ErrNoJSONFound, "text %q", text)
	}
}

func TestExtractJSON_Malformed(t *testing.T) {
	_, err := ExtractJSON(`here {"title": "A",} and {oops}`)

	var malformed *MalformedJSONError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, `{"title": "A",} and {oops}`, malformed.Candidate)
}
