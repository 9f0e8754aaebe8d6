package models

import "time"

// Song field defaults applied whenever provider output is missing or unusable
const (
	DefaultTitle            = "Untitled Track"
	DefaultArtist           = "AI Composer"
	DefaultGenre            = "Electronic"
	DefaultBPM              = 120
	DefaultMood             = "electronic"
	DefaultCoverDescription = "Abstract neon waveforms drifting over a dark gradient"
	DefaultColorScheme      = "purple-blue"

	MinBPM = 60
	MaxBPM = 180

	// EmptyPromptMarker replaces an empty prompt in provenance
	EmptyPromptMarker = "(empty prompt)"
)

// ColorSchemes is the palette the UI knows how to render
var ColorSchemes = []string{
	"purple-blue",
	"pink-orange",
	"green-teal",
	"blue-cyan",
	"red-black",
	"yellow-orange",
}

// IsColorScheme reports whether s is part of the palette
func IsColorScheme(s string) bool {
	for _, c := range ColorSchemes {
		if c == s {
			return true
		}
	}
	return false
}

// GeneratedSong is the canonical output of the generation pipeline.
// Every field is populated by the time it leaves the service.
type GeneratedSong struct {
	Title            string     `json:"title"`
	Artist           string     `json:"artist"`
	Genre            string     `json:"genre"`
	BPM              int        `json:"bpm"`
	Mood             string     `json:"mood"`
	CoverDescription string     `json:"coverDescription"`
	ColorScheme      string     `json:"colorScheme"`
	Provenance       Provenance `json:"provenance"`
}

// Provenance records where a song came from
type Provenance struct {
	IsReal           bool      `json:"isReal"`
	ProviderID       *string   `json:"providerId"`
	GeneratedAt      time.Time `json:"generatedAt"`
	PromptUsed       string    `json:"promptUsed"`
	Error            *string   `json:"error"`
	NormalizedFields []string  `json:"normalizedFields,omitempty"`
}

// DefaultSong returns a song with every field set to its default
func DefaultSong() GeneratedSong {
	return GeneratedSong{
		Title:            DefaultTitle,
		Artist:           DefaultArtist,
		Genre:            DefaultGenre,
		BPM:              DefaultBPM,
		Mood:             DefaultMood,
		CoverDescription: DefaultCoverDescription,
		ColorScheme:      DefaultColorScheme,
	}
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
