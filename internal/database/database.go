package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

const sqliteScheme = "sqlite://"

// ErrNoDatabase is returned by Connect for an empty URL; callers use the
// in-memory playlist instead.
var ErrNoDatabase = errors.New("no database configured")

// Connect opens a gorm connection. postgres:// and postgresql:// URLs use
// the postgres driver; sqlite://path (or sqlite://:memory:) uses sqlite.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, ErrNoDatabase
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		dialector = postgres.Open(databaseURL)
	case strings.HasPrefix(databaseURL, sqliteScheme):
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme))
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", redact(databaseURL))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.Printf("✅ Database connected (%s)", dialector.Name())
	return db, nil
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.PlaylistEntry{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// redact drops everything after the scheme so credentials never reach logs
func redact(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i+3] + "..."
	}
	return "..."
}
