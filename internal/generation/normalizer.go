package generation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/prompt"
)

const (
	maxNameRunes  = 120
	maxCoverRunes = 500
)

var leadingNumber = regexp.MustCompile(`^[-+]?\d+(\.\d+)?([eE][-+]?\d+)?`)

// Normalize turns an untyped provider payload into a complete song. It never
// fails: missing, mistyped or out-of-range values are replaced by defaults,
// and the names of every field that was changed are returned alongside.
func Normalize(raw map[string]any) (models.GeneratedSong, []string) {
	n := &normalizer{raw: raw}
	song := models.GeneratedSong{
		Title:            n.text("title", models.DefaultTitle, maxNameRunes),
		Artist:           n.text("artist", models.DefaultArtist, maxNameRunes),
		Genre:            n.text("genre", models.DefaultGenre, maxNameRunes),
		BPM:              n.bpm(),
		Mood:             n.text("mood", models.DefaultMood, maxNameRunes),
		CoverDescription: n.text("coverDescription", models.DefaultCoverDescription, maxCoverRunes),
		ColorScheme:      n.colorScheme(),
	}
	return song, n.changed
}

type normalizer struct {
	raw     map[string]any
	changed []string
}

func (n *normalizer) mark(field string) {
	n.changed = append(n.changed, field)
}

func (n *normalizer) text(field, def string, maxRunes int) string {
	v, ok := n.raw[field]
	if !ok || v == nil {
		n.mark(field)
		return def
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	default:
		n.mark(field)
		return def
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		n.mark(field)
		return def
	}
	capped := prompt.Truncate(trimmed, maxRunes)
	if capped != s {
		n.mark(field)
	}
	return capped
}

func (n *normalizer) bpm() int {
	var f float64
	coerced := false
	switch val := n.raw["bpm"].(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(leadingNumber.FindString(strings.TrimSpace(val)), 64)
		if err != nil {
			n.mark("bpm")
			return models.DefaultBPM
		}
		f = parsed
		coerced = true
	default:
		n.mark("bpm")
		return models.DefaultBPM
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		n.mark("bpm")
		return models.DefaultBPM
	}

	// Clamp before converting so out-of-range floats cannot overflow int.
	bpm := int(math.Round(math.Max(models.MinBPM, math.Min(models.MaxBPM, f))))
	if coerced || float64(bpm) != f {
		n.mark("bpm")
	}
	return bpm
}

func (n *normalizer) colorScheme() string {
	v, ok := n.raw["colorScheme"].(string)
	if !ok {
		n.mark("colorScheme")
		return models.DefaultColorScheme
	}
	scheme := strings.ToLower(strings.TrimSpace(v))
	if !models.IsColorScheme(scheme) {
		n.mark("colorScheme")
		return models.DefaultColorScheme
	}
	if scheme != v {
		n.mark("colorScheme")
	}
	return scheme
}

// SongFields flattens a song back into the untyped shape Normalize accepts
func SongFields(song models.GeneratedSong) map[string]any {
	return map[string]any{
		"title":            song.Title,
		"artist":           song.Artist,
		"genre":            song.Genre,
		"bpm":              float64(song.BPM),
		"mood":             song.Mood,
		"coverDescription": song.CoverDescription,
		"colorScheme":      song.ColorScheme,
	}
}
