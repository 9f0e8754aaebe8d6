package generation

import (
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// Fallback reasons that are not provider failures
const (
	ReasonNotConfigured = "not-configured"

	fuzzyThreshold = 0.9
)

// CatalogEntry is a pre-built song with the prompt keywords that select it
type CatalogEntry struct {
	Song     models.GeneratedSong
	Keywords []string
}

// DefaultCatalog is the built-in fallback catalog, in selection priority order
var DefaultCatalog = []CatalogEntry{
	{
		Song: models.GeneratedSong{
			Title:            "Digital Dreams",
			Artist:           "Neural Echo",
			Genre:            "Lo-fi Hip Hop",
			BPM:              85,
			Mood:             "chill",
			CoverDescription: "A rain-streaked window at dusk with a glowing laptop and a sleeping cat",
			ColorScheme:      "purple-blue",
		},
		Keywords: []string{"chill", "lofi", "lo-fi", "study", "relax"},
	},
	{
		Song: models.GeneratedSong{
			Title:            "Neon Sunrise",
			Artist:           "Circuit Mind",
			Genre:            "Synthwave",
			BPM:              110,
			Mood:             "nostalgic",
			CoverDescription: "A chrome sports car racing toward a striped sunset over a wireframe grid",
			ColorScheme:      "pink-orange",
		},
		Keywords: []string{"synthwave", "retro", "80s", "night", "driv"},
	},
	{
		Song: models.GeneratedSong{
			Title:            "Pulse Protocol",
			Artist:           "Kinetic Grid",
			Genre:            "Techno",
			BPM:              132,
			Mood:             "energetic",
			CoverDescription: "Strobing red lasers cutting through warehouse fog",
			ColorScheme:      "red-black",
		},
		Keywords: []string{"techno", "workout", "energetic", "gym", "dance"},
	},
	{
		Song: models.GeneratedSong{
			Title:            "Static Horizons",
			Artist:           "Ambient Node",
			Genre:            "Ambient",
			BPM:              70,
			Mood:             "calm",
			CoverDescription: "Soft teal fog rolling over a still lake beneath faint stars",
			ColorScheme:      "green-teal",
		},
		Keywords: []string{"ambient", "coding", "focus", "sleep", "calm"},
	},
	{
		Song: models.GeneratedSong{
			Title:            "Pixel Quest",
			Artist:           "Bitcrush Heroes",
			Genre:            "Chiptune",
			BPM:              150,
			Mood:             "playful",
			CoverDescription: "An 8-bit knight leaping across floating blocks under a cyan sky",
			ColorScheme:      "blue-cyan",
		},
		Keywords: []string{"video game", "8-bit", "arcade", "chiptune", "8bit"},
	},
}

// FallbackSelector picks a catalog song when no provider produced one
type FallbackSelector struct {
	catalog []CatalogEntry
	metric  strutil.StringMetric

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewFallbackSelector creates a selector over catalog. A nil rng is seeded
// from the clock; an empty catalog uses DefaultCatalog.
func NewFallbackSelector(catalog []CatalogEntry, rng *rand.Rand) *FallbackSelector {
	if len(catalog) == 0 {
		catalog = DefaultCatalog
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FallbackSelector{
		catalog: catalog,
		metric:  metrics.NewJaroWinkler(),
		rng:     rng,
		now:     time.Now,
	}
}

// Select returns a fully populated fallback song for prompt. It never fails.
func (s *FallbackSelector) Select(promptText, reason string) models.GeneratedSong {
	entry := s.match(promptText)

	song := entry.Song
	promptUsed := promptText
	if strings.TrimSpace(promptUsed) == "" {
		promptUsed = models.EmptyPromptMarker
	}
	song.Provenance = models.Provenance{
		IsReal:      false,
		ProviderID:  nil,
		GeneratedAt: s.now().UTC(),
		PromptUsed:  promptUsed,
		Error:       &reason,
	}
	return song
}

func (s *FallbackSelector) match(promptText string) CatalogEntry {
	lower := strings.ToLower(promptText)

	if strings.TrimSpace(lower) != "" {
		for _, entry := range s.catalog {
			for _, kw := range entry.Keywords {
				if strings.Contains(lower, kw) {
					return entry
				}
			}
		}

		if entry, ok := s.fuzzyMatch(lower); ok {
			return entry
		}
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(s.catalog))
	s.mu.Unlock()
	return s.catalog[idx]
}

// fuzzyMatch catches misspellings like "synthwav" or "chil"
func (s *FallbackSelector) fuzzyMatch(lower string) (CatalogEntry, bool) {
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	best := -1
	bestScore := 0.0
	for i, entry := range s.catalog {
		for _, kw := range entry.Keywords {
			if strings.Contains(kw, " ") {
				continue
			}
			for _, w := range words {
				score := strutil.Similarity(w, kw, s.metric)
				if score >= fuzzyThreshold && score > bestScore {
					best, bestScore = i, score
				}
			}
		}
	}
	if best < 0 {
		return CatalogEntry{}, false
	}
	return s.catalog[best], true
}
