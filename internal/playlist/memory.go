package playlist

import (
	"context"
	"sync"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// MemoryStore is a process-local Store. Entries are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.PlaylistEntry
	nextID  uint
}

// NewMemoryStore creates an empty in-memory playlist
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Merge implements Store
func (s *MemoryStore) Merge(_ context.Context, rec models.PrioritizationRecord) (models.PlaylistEntry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.NewPlaylistEntry(rec)
	for i, existing := range s.entries {
		if existing.SongKey != entry.SongKey {
			continue
		}
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.Boosts = existing.Boosts + 1
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		break
	}
	if entry.ID == 0 {
		s.nextID++
		entry.ID = s.nextID
		entry.CreatedAt = rec.SettledAt
	}
	entry.UpdatedAt = rec.SettledAt

	s.entries = append([]models.PlaylistEntry{entry}, s.entries...)
	return entry, 1, nil
}

// List implements Store
func (s *MemoryStore) List(_ context.Context) ([]models.PlaylistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PlaylistEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Reset implements Store
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}
