package agent

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

const (
	// Version is reported in every analysis
	Version = "AI-Jukebox-Agent-v1.0"

	minScore       = 70
	scoreSpan      = 30
	minEngagement  = 60
	engagementSpan = 30

	// PriorityThreshold is the score above which a song is worth boosting
	PriorityThreshold = 80
)

// Analyzer scores generated songs for the prioritization agent
type Analyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	suggestedPrice string
}

// NewAnalyzer creates an analyzer. A nil rng is seeded from the clock.
func NewAnalyzer(rng *rand.Rand, suggestedAmount string) *Analyzer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{
		rng:            rng,
		now:            time.Now,
		suggestedPrice: fmt.Sprintf("%s %s", suggestedAmount, models.CurrencyUSDC),
	}
}

// Analyze scores song. The score is 70..99 and engagement 60..89.
func (a *Analyzer) Analyze(song models.GeneratedSong) models.AgentAnalysis {
	a.mu.Lock()
	score := minScore + a.rng.Intn(scoreSpan)
	engagement := minEngagement + a.rng.Intn(engagementSpan)
	a.mu.Unlock()

	recommendation := models.RecommendMonitor
	if score > PriorityThreshold {
		recommendation = models.RecommendPriority
	}

	return models.AgentAnalysis{
		SongID:              uuid.NewString(),
		Title:               song.Title,
		Artist:              song.Artist,
		Genre:               song.Genre,
		BPM:                 song.BPM,
		Mood:                song.Mood,
		Score:               score,
		Recommendation:      recommendation,
		Reasoning:           fmt.Sprintf("Based on genre %s at %d BPM with %s mood", song.Genre, song.BPM, song.Mood),
		EstimatedEngagement: engagement,
		SuggestedPrice:      a.suggestedPrice,
		AgentVersion:        Version,
		AnalyzedAt:          a.now().UTC(),
	}
}

// ShouldAutoPrioritize reports whether auto mode should pay for the song
func ShouldAutoPrioritize(analysis models.AgentAnalysis) bool {
	return analysis.Score > PriorityThreshold
}
