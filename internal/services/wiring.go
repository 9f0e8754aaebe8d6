package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/database"
	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/metrics"
	"github.com/Conceptual-Machines/jukebox-api/internal/observability"
	"github.com/Conceptual-Machines/jukebox-api/internal/playlist"
)

// Runtime is a fully wired pipeline shared by the server and the CLI
type Runtime struct {
	Jukebox  *Jukebox
	Recorder *metrics.Recorder
	Tracer   *observability.LangfuseClient
}

// OpenPlaylistStore picks the playlist backend. An empty URL selects the
// in-memory store; anything else is connected and migrated.
func OpenPlaylistStore(databaseURL string) (playlist.Store, error) {
	db, err := database.Connect(databaseURL)
	if errors.Is(err, database.ErrNoDatabase) {
		logger.Info("DATABASE_URL not set, using in-memory playlist", nil)
		return playlist.NewMemoryStore(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return playlist.NewGormStore(db), nil
}

// NewRuntime wires storage, metrics, tracing and the Jukebox from configuration
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	store, err := OpenPlaylistStore(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist store: %w", err)
	}

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}
	recorder := metrics.NewRecorder(metrics.NewSentryMetrics(), cloudwatch)
	tracer := observability.InitializeLangfuse(ctx, cfg)

	jukebox, err := NewJukebox(ctx, cfg.Pipeline(), store, tracer, recorder)
	if err != nil {
		return nil, err
	}

	status := jukebox.CheckConfiguration()
	logger.Info("Jukebox pipeline ready", logger.Fields{
		"models":           jukebox.Models(),
		"generation_ready": status.GenerationReady,
		"payment_ready":    status.PaymentReady,
		"langfuse":         tracer.IsEnabled(),
	})
	return &Runtime{Jukebox: jukebox, Recorder: recorder, Tracer: tracer}, nil
}
