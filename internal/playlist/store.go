package playlist

import (
	"context"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// Store holds the prioritized playlist, most recent first. Merging the same
// (title, artist) twice bumps the existing entry instead of adding a row.
type Store interface {
	// Merge records a settled prioritization and returns the entry and its
	// 1-based position in the playlist.
	Merge(ctx context.Context, rec models.PrioritizationRecord) (models.PlaylistEntry, int, error)
	List(ctx context.Context) ([]models.PlaylistEntry, error)
	Reset(ctx context.Context) error
}
