package services

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/jukebox-api/internal/agent"
	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/generation"
	"github.com/Conceptual-Machines/jukebox-api/internal/llm"
	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/metrics"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/observability"
	"github.com/Conceptual-Machines/jukebox-api/internal/payment"
	"github.com/Conceptual-Machines/jukebox-api/internal/playlist"
	"github.com/Conceptual-Machines/jukebox-api/internal/prompt"
)

// ConfigurationStatus reports which external integrations have usable credentials
type ConfigurationStatus struct {
	GenerationReady bool `json:"generationReady"`
	PaymentReady    bool `json:"paymentReady"`
}

// AnalysisResult is an agent analysis plus the prioritization it triggered
type AnalysisResult struct {
	Analysis        models.AgentAnalysis         `json:"analysis"`
	AutoPrioritized bool                         `json:"autoPrioritized"`
	Prioritization  *models.PrioritizationRecord `json:"prioritization,omitempty"`
}

// Jukebox is the pipeline surface used by the HTTP API and the CLI.
// None of its operations fail; degraded results are flagged in the payload.
type Jukebox struct {
	cfg          config.PipelineConfig
	orchestrator *generation.Orchestrator
	payments     *payment.Service
	analyzer     *agent.Analyzer
	decisions    *agent.DecisionLog
}

// JukeboxDeps wires a Jukebox from prebuilt components
type JukeboxDeps struct {
	Config       config.PipelineConfig
	Orchestrator *generation.Orchestrator
	Payments     *payment.Service
	Analyzer     *agent.Analyzer
	Decisions    *agent.DecisionLog
}

// NewJukeboxWith creates a Jukebox from explicit components. Missing
// analyzer and decision log are created with defaults.
func NewJukeboxWith(deps JukeboxDeps) *Jukebox {
	j := &Jukebox{
		cfg:          deps.Config,
		orchestrator: deps.Orchestrator,
		payments:     deps.Payments,
		analyzer:     deps.Analyzer,
		decisions:    deps.Decisions,
	}
	if j.orchestrator == nil {
		j.orchestrator = generation.NewOrchestrator(generation.OrchestratorConfig{})
	}
	if j.payments == nil {
		j.payments = payment.NewService(payment.Config{DefaultAmount: deps.Config.DefaultAmount}, nil, nil)
	}
	if j.analyzer == nil {
		j.analyzer = agent.NewAnalyzer(nil, payment.NormalizeAmount("", deps.Config.DefaultAmount))
	}
	if j.decisions == nil {
		j.decisions = agent.NewDecisionLog(agent.DefaultLogCapacity)
	}
	return j
}

// NewJukebox builds the full pipeline from configuration
func NewJukebox(
	ctx context.Context,
	cfg config.PipelineConfig,
	store playlist.Store,
	tracer *observability.LangfuseClient,
	recorder *metrics.Recorder,
) (*Jukebox, error) {
	factory := llm.NewProviderFactory(llm.ChainConfig{
		GeminiAPIKey:        cfg.GeminiAPIKey,
		GeminiModels:        cfg.GeminiModels,
		GeminiRatePerMinute: cfg.GeminiRatePerMinute,
		OpenAIAPIKey:        cfg.OpenAIAPIKey,
		OpenAIModel:         cfg.OpenAIModel,
	})
	chain, err := factory.BuildChain(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider chain: %w", err)
	}

	orchestrator := generation.NewOrchestrator(generation.OrchestratorConfig{
		Providers: chain,
		Client:    generation.NewClient(prompt.NewPromptBuilder(), cfg.AttemptTimeout),
		Fallback:  generation.NewFallbackSelector(nil, nil),
		Tracer:    tracer,
		Recorder:  recorder,
	})

	payments := payment.NewService(payment.Config{
		APIKey:             cfg.CircleAPIKey,
		AppID:              cfg.CircleAppID,
		BaseURL:            cfg.CircleBaseURL,
		DestinationAddress: cfg.CircleDestinationAddress,
		SimulatedDelay:     cfg.SimulatedDelay,
		DefaultAmount:      cfg.DefaultAmount,
	}, store, recorder)

	return NewJukeboxWith(JukeboxDeps{
		Config:       cfg,
		Orchestrator: orchestrator,
		Payments:     payments,
	}), nil
}

// Generate turns an arbitrary prompt value into a displayable song
func (j *Jukebox) Generate(ctx context.Context, rawPrompt any) models.GeneratedSong {
	return j.GenerateDetailed(ctx, rawPrompt).Song
}

// GenerateDetailed is Generate plus the per-provider attempts
func (j *Jukebox) GenerateDetailed(ctx context.Context, rawPrompt any) generation.Result {
	var result generation.Result

	promptText, err := prompt.Validate(rawPrompt)
	if err != nil {
		original, _ := rawPrompt.(string)
		logger.Debug("Invalid prompt, serving fallback", logger.Fields{"error": err.Error()})
		result.Song = j.orchestrator.Fallback().Select(original, prompt.ReasonEmptyPrompt)
	} else {
		result = j.orchestrator.Generate(ctx, promptText)
	}

	song := result.Song
	if song.Provenance.IsReal {
		j.decisions.Record(models.EventSongGenerated, fmt.Sprintf("Generated %q by %s", song.Title, song.Artist), map[string]interface{}{
			"providerId": *song.Provenance.ProviderID,
			"attempts":   len(result.Attempts),
		})
	} else {
		j.decisions.Record(models.EventFallbackUsed, fmt.Sprintf("Served catalog song %q", song.Title), map[string]interface{}{
			"reason": *song.Provenance.Error,
		})
	}

	if err := models.ValidateSong(song); err != nil {
		logger.Error("Generated song violates output schema", err, logger.Fields{
			"title":   song.Title,
			"is_real": song.Provenance.IsReal,
		})
	}
	return result
}

// Prioritize pays to move a song to the top of the playlist
func (j *Jukebox) Prioritize(ctx context.Context, song models.SongRef, amount string) models.PrioritizationRecord {
	j.decisions.Record(models.EventPaymentStarted, fmt.Sprintf("Prioritizing %q", song.Title), map[string]interface{}{
		"artist": song.Artist,
		"amount": amount,
	})

	rec := j.payments.Prioritize(ctx, song, amount)

	event := models.EventPaymentCompleted
	if rec.IsSimulated {
		event = models.EventPaymentSimulated
	}
	j.decisions.Record(event, fmt.Sprintf("Settled %s %s for %q", rec.AmountRequested, rec.Currency, rec.SongTitle), map[string]interface{}{
		"transactionId": rec.TransactionID,
		"position":      rec.Position,
		"boosts":        rec.Boosts,
	})
	return rec
}

// Analyze scores a song and, in auto mode, prioritizes it when the score is high enough
func (j *Jukebox) Analyze(ctx context.Context, song models.GeneratedSong, autoMode bool) AnalysisResult {
	analysis := j.analyzer.Analyze(song)
	j.decisions.Record(models.EventAgentAnalyzed, fmt.Sprintf("Scored %q at %d", song.Title, analysis.Score), map[string]interface{}{
		"score":          analysis.Score,
		"recommendation": analysis.Recommendation,
	})

	result := AnalysisResult{Analysis: analysis}
	if !autoMode {
		return result
	}
	if !agent.ShouldAutoPrioritize(analysis) {
		j.decisions.Record(models.EventAutoPrioritizeSkip, fmt.Sprintf("Score %d below threshold", analysis.Score), nil)
		return result
	}

	j.decisions.Record(models.EventAutoPrioritize, fmt.Sprintf("Auto-prioritizing %q", song.Title), map[string]interface{}{
		"score": analysis.Score,
	})
	rec := j.Prioritize(ctx, models.SongRef{Title: song.Title, Artist: song.Artist}, "")
	result.AutoPrioritized = true
	result.Prioritization = &rec
	return result
}

// CheckConfiguration reports credential readiness without touching the network
func (j *Jukebox) CheckConfiguration() ConfigurationStatus {
	return ConfigurationStatus{
		GenerationReady: j.cfg.GenerationReady(),
		PaymentReady:    j.cfg.PaymentReady(),
	}
}

// Models lists the provider chain in the order it is tried
func (j *Jukebox) Models() []string {
	providers := j.orchestrator.Providers()
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.Model())
	}
	return out
}

// PaymentConfigured reports whether real Circle transfers are attempted
func (j *Jukebox) PaymentConfigured() bool {
	return j.payments.Configured()
}

// Playlist returns the prioritized songs, most recent first
func (j *Jukebox) Playlist(ctx context.Context) ([]models.PlaylistEntry, error) {
	return j.payments.Playlist().List(ctx)
}

// ResetPlaylist empties the playlist
func (j *Jukebox) ResetPlaylist(ctx context.Context) error {
	if err := j.payments.Playlist().Reset(ctx); err != nil {
		return err
	}
	j.decisions.Record(models.EventPlaylistCleared, "Playlist cleared", nil)
	return nil
}

// Decisions returns the agent decision log, newest first
func (j *Jukebox) Decisions() []models.AgentDecision {
	return j.decisions.List()
}

// ClearDecisions empties the decision log, leaving only the clear event
func (j *Jukebox) ClearDecisions() {
	j.decisions.Clear()
	j.decisions.Record(models.EventAgentLogCleared, "Decision log cleared", nil)
}
