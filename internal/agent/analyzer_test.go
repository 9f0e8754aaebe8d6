package agent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

func TestAnalyzer_Ranges(t *testing.T) {
	analyzer := NewAnalyzer(rand.New(rand.NewSource(3)), "0.001")
	song := models.DefaultSong()

	for i := 0; i < 200; i++ {
		a := analyzer.Analyze(song)
		assert.GreaterOrEqual(t, a.Score, 70)
		assert.LessOrEqual(t, a.Score, 99)
		assert.GreaterOrEqual(t, a.EstimatedEngagement, 60)
		assert.LessOrEqual(t, a.EstimatedEngagement, 89)

		if a.Score > PriorityThreshold {
			assert.Equal(t, models.RecommendPriority, a.Recommendation)
			assert.True(t, ShouldAutoPrioritize(a))
		} else {
			assert.Equal(t, models.RecommendMonitor, a.Recommendation)
			assert.False(t, ShouldAutoPrioritize(a))
		}
	}
}

func TestAnalyzer_Fields(t *testing.T) {
	song := models.GeneratedSong{Title: "Neon Sunrise", Artist: "Circuit Mind", Genre: "Synthwave", BPM: 110, Mood: "nostalgic"}

	a := NewAnalyzer(nil, "0.002").Analyze(song)

	assert.Equal(t, "Neon Sunrise", a.Title)
	assert.Equal(t, "Circuit Mind", a.Artist)
	assert.Equal(t, "Based on genre Synthwave at 110 BPM with nostalgic mood", a.Reasoning)
	assert.Equal(t, "0.002 USDC", a.SuggestedPrice)
	assert.Equal(t, Version, a.AgentVersion)
	assert.NotEmpty(t, a.SongID)
	assert.False(t, a.AnalyzedAt.IsZero())
}

func TestAnalyzer_DeterministicWithSeed(t *testing.T) {
	a := NewAnalyzer(rand.New(rand.NewSource(9)), "0.001")
	b := NewAnalyzer(rand.New(rand.NewSource(9)), "0.001")
	song := models.DefaultSong()

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Analyze(song).Score, b.Analyze(song).Score)
	}
}
