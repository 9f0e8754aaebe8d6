package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "CIRCLE_API_KEY", "CIRCLE_APP_ID",
		"DATABASE_URL", "SENTRY_DSN", "LANGFUSE_ENABLED",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("PAYMENT_SIMULATED_DELAY", "1ms")
	t.Setenv("NO_COLOR", "1")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerate_JSONFallback(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "generate", "--json", "synthwave", "for", "night", "driving")
	require.NoError(t, err)

	var song models.GeneratedSong
	require.NoError(t, json.Unmarshal([]byte(stdout), &song))
	assert.False(t, song.Provenance.IsReal)
	assert.Equal(t, "not-configured", *song.Provenance.Error)
	assert.Equal(t, "synthwave for night driving", song.Provenance.PromptUsed)
	assert.NoError(t, models.ValidateSong(song))
}

func TestGenerate_EmptyPromptText(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fallback song (empty-prompt)")
	assert.Contains(t, stdout, "BPM")
}

func TestPrioritize(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "prioritize", "--json", "--title", "T", "--artist", "A", "--amount", "0.002")
	require.NoError(t, err)

	var rec models.PrioritizationRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, models.StatusConfirmed, rec.Status)
	assert.True(t, rec.IsSimulated)
	assert.Equal(t, "0.002", rec.AmountRequested)
	assert.Equal(t, 1, rec.Position)
}

func TestPrioritize_RequiresTitle(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "prioritize", "--artist", "A")
	var ue usageError
	require.ErrorAs(t, err, &ue)
}

func TestStatus(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "status", "--json")
	require.NoError(t, err)

	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, false, status["generationReady"])
	assert.Equal(t, false, status["paymentReady"])
	assert.NotEmpty(t, status["models"])
}

func TestPlaylist_EmptyFreshRuntime(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "playlist", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)

	stdout, _, err = runCLI(t, "playlist")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Playlist is empty")
}
