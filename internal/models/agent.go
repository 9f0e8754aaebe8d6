package models

import "time"

// Agent recommendations
const (
	RecommendPriority = "RECOMMENDED_FOR_PRIORITY"
	RecommendMonitor  = "MONITOR"
)

// Decision log events
const (
	EventSongGenerated      = "SONG_GENERATED"
	EventFallbackUsed       = "FALLBACK_USED"
	EventAgentAnalyzed      = "AGENT_ANALYZED"
	EventAutoPrioritize     = "AUTO_PRIORITIZE_TRIGGERED"
	EventPaymentStarted     = "PAYMENT_STARTED"
	EventPaymentCompleted   = "PAYMENT_COMPLETED"
	EventPaymentSimulated   = "PAYMENT_SIMULATED"
	EventPlaylistCleared    = "PLAYLIST_CLEARED"
	EventAgentLogCleared    = "AGENT_LOG_CLEARED"
	EventAutoPrioritizeSkip = "AUTO_PRIORITIZE_SKIPPED"
)

// AgentAnalysis is the agent's opinion of a generated song
type AgentAnalysis struct {
	SongID              string    `json:"songId"`
	Title               string    `json:"title"`
	Artist              string    `json:"artist"`
	Genre               string    `json:"genre"`
	BPM                 int       `json:"bpm"`
	Mood                string    `json:"mood"`
	Score               int       `json:"score"`
	Recommendation      string    `json:"recommendation"`
	Reasoning           string    `json:"reasoning"`
	EstimatedEngagement int       `json:"estimatedEngagement"`
	SuggestedPrice      string    `json:"suggestedPrice"`
	AgentVersion        string    `json:"agentVersion"`
	AnalyzedAt          time.Time `json:"analyzedAt"`
}

// AgentDecision is one entry of the agent decision log
type AgentDecision struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
