package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

func completeSong() models.GeneratedSong {
	return models.GeneratedSong{
		Title:            "Neon Sunrise",
		Artist:           "Circuit Mind",
		Genre:            "Synthwave",
		BPM:              110,
		Mood:             "nostalgic",
		CoverDescription: "A chrome car under a striped sun",
		ColorScheme:      "pink-orange",
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	song := completeSong()

	got, changed := Normalize(SongFields(song))
	assert.Equal(t, song, got)
	assert.Empty(t, changed)
}

func TestNormalize_EmptyInputUsesDefaults(t *testing.T) {
	got, changed := Normalize(map[string]any{})

	want := models.DefaultSong()
	assert.Equal(t, want, got)
	assert.ElementsMatch(t, []string{"title", "artist", "genre", "bpm", "mood", "coverDescription", "colorScheme"}, changed)
}

func TestNormalize_BPM(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		changed bool
	}{
		{name: "in range", value: float64(128), want: 128},
		{name: "rounded", value: 127.6, want: 128, changed: true},
		{name: "too slow", value: float64(20), want: 60, changed: true},
		{name: "too fast", value: float64(400), want: 180, changed: true},
		{name: "huge", value: 1e19, want: 180, changed: true},
		{name: "beyond int range", value: 1e300, want: 180, changed: true},
		{name: "hugely negative", value: -1e300, want: 60, changed: true},
		{name: "exponent string", value: "1e19", want: 180, changed: true},
		{name: "numeric string", value: "128", want: 128, changed: true},
		{name: "string with unit", value: "140 BPM", want: 140, changed: true},
		{name: "non numeric string", value: "fast", want: 120, changed: true},
		{name: "wrong type", value: []any{1}, want: 120, changed: true},
		{name: "null", value: nil, want: 120, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := SongFields(completeSong())
			raw["bpm"] = tt.value

			got, changed := Normalize(raw)
			assert.Equal(t, tt.want, got.BPM)
			assert.Equal(t, tt.changed, contains(changed, "bpm"))
		})
	}
}

func TestNormalize_Strings(t *testing.T) {
	raw := SongFields(completeSong())
	raw["title"] = "  Spaced Out  "
	raw["artist"] = 42.0
	raw["genre"] = "   "
	raw["mood"] = map[string]any{"x": 1}
	raw["coverDescription"] = strings.Repeat("a", 600)

	got, changed := Normalize(raw)

	assert.Equal(t, "Spaced Out", got.Title)
	assert.Equal(t, "42", got.Artist)
	assert.Equal(t, models.DefaultGenre, got.Genre)
	assert.Equal(t, models.DefaultMood, got.Mood)
	assert.Len(t, []rune(got.CoverDescription), 500)
	assert.ElementsMatch(t, []string{"title", "genre", "mood", "coverDescription"}, changed)
}

func TestNormalize_ColorScheme(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{value: "green-teal", want: "green-teal"},
		{value: " Blue-Cyan ", want: "blue-cyan"},
		{value: "rainbow", want: models.DefaultColorScheme},
		{value: 7.0, want: models.DefaultColorScheme},
	}

	for _, tt := range tests {
		raw := SongFields(completeSong())
		raw["colorScheme"] = tt.value
		got, _ := Normalize(raw)
		assert.Equal(t, tt.want, got.ColorScheme, "value %v", tt.value)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
