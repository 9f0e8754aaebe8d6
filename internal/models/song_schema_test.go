package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realSong() GeneratedSong {
	song := DefaultSong()
	song.Provenance = Provenance{
		IsReal:      true,
		ProviderID:  StringPtr("gemini-2.5-flash"),
		GeneratedAt: time.Now(),
		PromptUsed:  "chill lofi",
	}
	return song
}

func TestValidateSong(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *GeneratedSong)
		wantErr bool
	}{
		{name: "complete real song", mutate: func(_ *GeneratedSong) {}},
		{
			name: "fallback song with error",
			mutate: func(s *GeneratedSong) {
				s.Provenance.IsReal = false
				s.Provenance.ProviderID = nil
				s.Provenance.Error = StringPtr("empty-prompt")
			},
		},
		{name: "bpm above range", mutate: func(s *GeneratedSong) { s.BPM = 200 }, wantErr: true},
		{name: "empty title", mutate: func(s *GeneratedSong) { s.Title = "" }, wantErr: true},
		{name: "unknown color", mutate: func(s *GeneratedSong) { s.ColorScheme = "rainbow" }, wantErr: true},
		{
			name:    "real song without provider",
			mutate:  func(s *GeneratedSong) { s.Provenance.ProviderID = nil },
			wantErr: true,
		},
		{
			name: "fallback song without error",
			mutate: func(s *GeneratedSong) {
				s.Provenance.IsReal = false
				s.Provenance.ProviderID = nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := realSong()
			tt.mutate(&song)
			err := ValidateSong(song)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSongRefKey(t *testing.T) {
	a := SongRef{Title: "Neon Sunrise", Artist: "Circuit Mind"}
	b := SongRef{Title: "  neon   SUNRISE ", Artist: "circuit mind"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), SongRef{Title: "Neon Sunrise", Artist: "Other"}.Key())
}

func TestIsColorScheme(t *testing.T) {
	assert.True(t, IsColorScheme(DefaultColorScheme))
	assert.False(t, IsColorScheme("Purple-Blue"))
}
