package payment

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/playlist"
)

type fakeRecorder struct {
	simulated []bool
}

func (f *fakeRecorder) RecordPrioritization(_ context.Context, simulated bool, _ time.Duration) {
	f.simulated = append(f.simulated, simulated)
}

func newSimulatedService(delay time.Duration, rec Recorder) *Service {
	return NewService(Config{SimulatedDelay: delay}, playlist.NewMemoryStore(), rec)
}

func withCircle(t *testing.T, svc *Service, baseURL string) {
	t.Helper()
	svc.circle = newTestCircleClient(baseURL)
	svc.circle.cfg.MaxElapsed = 300 * time.Millisecond
}

func TestPrioritize_Simulated(t *testing.T) {
	const delay = 50 * time.Millisecond
	rec := &fakeRecorder{}
	svc := newSimulatedService(delay, rec)
	require.False(t, svc.Configured())

	start := time.Now()
	got := svc.Prioritize(context.Background(), models.SongRef{Title: "T", Artist: "A"}, "")
	elapsed := time.Since(start)

	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.True(t, IsSyntheticTransactionID(got.TransactionID), got.TransactionID)
	assert.True(t, got.IsSimulated)
	assert.Equal(t, DefaultAmount, got.AmountRequested)
	assert.Equal(t, models.CurrencyUSDC, got.Currency)
	assert.Equal(t, models.NetworkArc, got.Network)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.SettledAt.IsZero())
	assert.Equal(t, 1, got.Position)
	assert.Equal(t, 1, got.Boosts)
	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Less(t, elapsed, delay+time.Second)
	assert.Equal(t, []bool{true}, rec.simulated)
}

func TestPrioritize_DelayHonoursContext(t *testing.T) {
	svc := newSimulatedService(time.Hour, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got := svc.Prioritize(ctx, models.SongRef{Title: "T", Artist: "A"}, "0.5")

	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "0.5", got.AmountRequested)
}

func TestPrioritize_DuplicateMerges(t *testing.T) {
	svc := newSimulatedService(0, nil)
	ctx := context.Background()

	svc.Prioritize(ctx, models.SongRef{Title: "T", Artist: "A"}, "")
	svc.Prioritize(ctx, models.SongRef{Title: "Other", Artist: "X"}, "")
	second := svc.Prioritize(ctx, models.SongRef{Title: " t ", Artist: "a"}, "")

	assert.Equal(t, 2, second.Boosts)
	assert.Equal(t, 1, second.Position)

	entries, err := svc.Playlist().List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPrioritize_EmptySongRefUsesDefaults(t *testing.T) {
	got := newSimulatedService(0, nil).Prioritize(context.Background(), models.SongRef{}, "")

	assert.Equal(t, models.DefaultTitle, got.SongTitle)
	assert.Equal(t, models.DefaultArtist, got.Artist)
}

func TestPrioritize_CircleSuccess(t *testing.T) {
	srv := newCircleServer(t, http.StatusCreated)
	rec := &fakeRecorder{}
	svc := newSimulatedService(time.Hour, rec)
	withCircle(t, svc, srv.URL)

	got := svc.Prioritize(context.Background(), models.SongRef{Title: "T", Artist: "A"}, "0.002")

	assert.False(t, got.IsSimulated)
	assert.Equal(t, "0xabc", got.TransactionID)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, []bool{false}, rec.simulated)
}

func TestPrioritize_CircleFailureDowngrades(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "client error", status: http.StatusBadRequest},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCircleServer(t, tt.status)
			svc := newSimulatedService(time.Hour, nil)
			withCircle(t, svc, srv.URL)

			got := svc.Prioritize(context.Background(), models.SongRef{Title: "T", Artist: "A"}, "")

			assert.True(t, got.IsSimulated)
			assert.Equal(t, models.StatusConfirmed, got.Status)
			assert.True(t, IsSyntheticTransactionID(got.TransactionID))
			assert.Contains(t, got.Note, "HTTP")
		})
	}
}

type failingStore struct{ playlist.MemoryStore }

func (f *failingStore) Merge(context.Context, models.PrioritizationRecord) (models.PlaylistEntry, int, error) {
	return models.PlaylistEntry{}, 0, assert.AnError
}

func TestPrioritize_PlaylistFailureStillConfirms(t *testing.T) {
	svc := NewService(Config{}, &failingStore{}, nil)

	got := svc.Prioritize(context.Background(), models.SongRef{Title: "T", Artist: "A"}, "")

	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Contains(t, got.Note, "playlist unavailable")
	assert.Equal(t, 0, got.Position)
}
