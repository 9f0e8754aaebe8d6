package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/playlist"
)

const minCredentialLength = 10

// Recorder receives payment metrics
type Recorder interface {
	RecordPrioritization(ctx context.Context, simulated bool, duration time.Duration)
}

// Config configures the payment service
type Config struct {
	APIKey             string
	AppID              string
	BaseURL            string
	DestinationAddress string
	// SimulatedDelay models settlement latency on the simulated path
	SimulatedDelay time.Duration
	DefaultAmount  string
}

// CredentialsValid reports whether the Circle credentials pass the minimum
// shape check: both present and longer than ten characters.
func CredentialsValid(apiKey, appID string) bool {
	return len(apiKey) > minCredentialLength && len(appID) > minCredentialLength
}

// Service settles prioritization payments and merges the song into the playlist
type Service struct {
	cfg      Config
	circle   *CircleClient
	store    playlist.Store
	recorder Recorder

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewService creates a payment service. Without valid credentials every
// prioritization is simulated.
func NewService(cfg Config, store playlist.Store, recorder Recorder) *Service {
	if store == nil {
		store = playlist.NewMemoryStore()
	}
	cfg.DefaultAmount = NormalizeAmount(cfg.DefaultAmount, DefaultAmount)

	s := &Service{
		cfg:      cfg,
		store:    store,
		recorder: recorder,
		now:      time.Now,
		sleep:    sleepContext,
	}
	if CredentialsValid(cfg.APIKey, cfg.AppID) {
		s.circle = NewCircleClient(CircleConfig{
			APIKey:             cfg.APIKey,
			AppID:              cfg.AppID,
			BaseURL:            cfg.BaseURL,
			DestinationAddress: cfg.DestinationAddress,
		})
	}
	return s
}

// Configured reports whether real transfers will be attempted
func (s *Service) Configured() bool {
	return s.circle != nil
}

// Playlist returns the store prioritized songs are merged into
func (s *Service) Playlist() playlist.Store {
	return s.store
}

// Prioritize settles a payment for song and bumps it in the playlist. It
// never fails: transport errors downgrade to a simulated confirmed record.
func (s *Service) Prioritize(ctx context.Context, song models.SongRef, amount string) models.PrioritizationRecord {
	span := sentry.StartSpan(ctx, "payment.prioritize")
	defer span.Finish()
	ctx = span.Context()

	start := time.Now()
	rec := models.PrioritizationRecord{
		ID:              uuid.NewString(),
		SongTitle:       orDefault(song.Title, models.DefaultTitle),
		Artist:          orDefault(song.Artist, models.DefaultArtist),
		AmountRequested: NormalizeAmount(amount, s.cfg.DefaultAmount),
		Currency:        models.CurrencyUSDC,
		Status:          models.StatusPending,
		Network:         models.NetworkArc,
	}

	rec.TransactionID, rec.IsSimulated, rec.Note = s.settle(ctx, rec)
	rec.Status = models.StatusConfirmed
	rec.SettledAt = s.now().UTC()

	entry, position, err := s.store.Merge(ctx, rec)
	if err != nil {
		logger.Error("Failed to merge prioritized song into playlist", err, logger.Fields{
			"song_title": rec.SongTitle,
			"artist":     rec.Artist,
		})
		rec.Note = joinNotes(rec.Note, "playlist unavailable")
	} else {
		rec.Position = position
		rec.Boosts = entry.Boosts
	}

	span.SetTag("simulated", boolTag(rec.IsSimulated))
	if s.recorder != nil {
		s.recorder.RecordPrioritization(ctx, rec.IsSimulated, time.Since(start))
	}
	logger.Info("Song prioritized", logger.Fields{
		"song_title":     rec.SongTitle,
		"amount":         rec.AmountRequested,
		"transaction_id": rec.TransactionID,
		"simulated":      rec.IsSimulated,
		"boosts":         rec.Boosts,
	})
	return rec
}

// settle returns the transaction id, whether it was simulated, and a note
func (s *Service) settle(ctx context.Context, rec models.PrioritizationRecord) (string, bool, string) {
	if !s.Configured() {
		s.sleep(ctx, s.cfg.SimulatedDelay)
		return NewTransactionID(), true, ErrPaymentNotConfigured.Error()
	}

	res, err := s.circle.Transfer(ctx, TransferRequest{
		Amount:    rec.AmountRequested,
		SongTitle: rec.SongTitle,
		Artist:    rec.Artist,
	})
	if err != nil {
		var transportErr *PaymentTransportError
		if !errors.As(err, &transportErr) {
			transportErr = &PaymentTransportError{Err: err}
		}
		logger.Warn("Circle transfer failed, recording simulated settlement", logger.Fields{
			"status": transportErr.Status,
			"error":  transportErr.Error(),
		})
		return NewTransactionID(), true, transportErr.Error()
	}

	if res.TransactionHash != "" {
		return res.TransactionHash, false, ""
	}
	return res.ID, false, ""
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func joinNotes(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
