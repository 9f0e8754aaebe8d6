package llm

import (
	"google.golang.org/genai"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// GetSongOutputSchema returns the JSON schema providers are asked to follow
func GetSongOutputSchema() *OutputSchema {
	return &OutputSchema{
		Name:        "GeneratedSong",
		Description: "Metadata for one invented song",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":            map[string]any{"type": "string"},
				"artist":           map[string]any{"type": "string"},
				"genre":            map[string]any{"type": "string"},
				"bpm":              map[string]any{"type": "integer", "minimum": models.MinBPM, "maximum": models.MaxBPM},
				"mood":             map[string]any{"type": "string"},
				"coverDescription": map[string]any{"type": "string"},
				"colorScheme":      map[string]any{"type": "string", "enum": models.ColorSchemes},
			},
			"required": []string{"title", "artist", "genre", "bpm", "mood", "coverDescription", "colorScheme"},
		},
	}
}

// songSchemaToGemini mirrors GetSongOutputSchema in Gemini's schema type
func songSchemaToGemini() *genai.Schema {
	minBPM := float64(models.MinBPM)
	maxBPM := float64(models.MaxBPM)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":            {Type: genai.TypeString},
			"artist":           {Type: genai.TypeString},
			"genre":            {Type: genai.TypeString},
			"bpm":              {Type: genai.TypeInteger, Minimum: &minBPM, Maximum: &maxBPM},
			"mood":             {Type: genai.TypeString},
			"coverDescription": {Type: genai.TypeString},
			"colorScheme":      {Type: genai.TypeString, Enum: models.ColorSchemes},
		},
		Required: []string{"title", "artist", "genre", "bpm", "mood", "coverDescription", "colorScheme"},
	}
}
