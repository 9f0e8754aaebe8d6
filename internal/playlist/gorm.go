package playlist

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

// GormStore persists the playlist in SQL through gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an already migrated database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Merge implements Store. The insert and the boost run in one transaction;
// the unique song_key index turns a concurrent duplicate insert into a no-op
// that falls through to the update.
func (s *GormStore) Merge(ctx context.Context, rec models.PrioritizationRecord) (models.PlaylistEntry, int, error) {
	entry := models.NewPlaylistEntry(rec)
	key := entry.SongKey
	var position int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "song_key"}},
			DoNothing: true,
		}).Create(&entry)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			if err := tx.Model(&models.PlaylistEntry{}).
				Where("song_key = ?", key).
				Updates(map[string]interface{}{
					"title":               entry.Title,
					"artist":              entry.Artist,
					"last_amount":         entry.LastAmount,
					"currency":            entry.Currency,
					"last_transaction_id": entry.LastTransactionID,
					"is_simulated":        entry.IsSimulated,
					"last_prioritized_at": entry.LastPrioritizedAt,
					"boosts":              gorm.Expr("boosts + ?", 1),
				}).Error; err != nil {
				return err
			}
			entry = models.PlaylistEntry{}
			if err := tx.Where("song_key = ?", key).First(&entry).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.PlaylistEntry{}).
			Where("last_prioritized_at > ?", entry.LastPrioritizedAt).
			Count(&position).Error
	})
	if err != nil {
		return models.PlaylistEntry{}, 0, fmt.Errorf("merge playlist entry: %w", err)
	}
	return entry, int(position) + 1, nil
}

// List implements Store
func (s *GormStore) List(ctx context.Context) ([]models.PlaylistEntry, error) {
	var entries []models.PlaylistEntry
	if err := s.db.WithContext(ctx).
		Order("last_prioritized_at DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Reset implements Store
func (s *GormStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.PlaylistEntry{}).Error
}
