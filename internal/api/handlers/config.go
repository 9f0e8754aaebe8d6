package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

const (
	statusActive  = "active"
	statusInvalid = "invalid"
)

type ConfigHandler struct {
	jukebox *services.Jukebox
	cfg     *config.Config
	version string
}

func NewConfigHandler(jukebox *services.Jukebox, cfg *config.Config, version string) *ConfigHandler {
	return &ConfigHandler{jukebox: jukebox, cfg: cfg, version: version}
}

// ConfigReport describes integration readiness. Credentials are reported
// by length only.
type ConfigReport struct {
	System   SystemInfo                   `json:"system"`
	Gemini   GeminiInfo                   `json:"gemini"`
	OpenAI   OpenAIInfo                   `json:"openai"`
	Circle   CircleInfo                   `json:"circle"`
	Arc      NetworkInfo                  `json:"arc"`
	Status   services.ConfigurationStatus `json:"status"`
	Features map[string]bool              `json:"features"`
}

type SystemInfo struct {
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Persistence string `json:"persistence"`
}

type GeminiInfo struct {
	Configured bool     `json:"configured"`
	KeyLength  int      `json:"keyLength"`
	Models     []string `json:"models"`
	Status     string   `json:"status"`
	Quota      string   `json:"quota"`
}

type OpenAIInfo struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model"`
}

type CircleInfo struct {
	Configured   bool   `json:"configured"`
	APIKeyLength int    `json:"apiKeyLength"`
	AppIDLength  int    `json:"appIdLength"`
	Status       string `json:"status"`
	Sandbox      bool   `json:"sandbox"`
	Network      string `json:"network"`
}

type NetworkInfo struct {
	Network  string `json:"network"`
	Currency string `json:"currency"`
	Finality string `json:"finality"`
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	status := h.jukebox.CheckConfiguration()
	geminiReady := h.cfg.IsGeminiConfigured()
	circleReady := h.cfg.IsCircleConfigured()

	persistence := "memory"
	if h.cfg.DatabaseURL != "" {
		persistence = "database"
	}

	c.JSON(http.StatusOK, ConfigReport{
		System: SystemInfo{
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Environment: h.cfg.Environment,
			Version:     h.version,
			Persistence: persistence,
		},
		Gemini: GeminiInfo{
			Configured: geminiReady,
			KeyLength:  len(h.cfg.GeminiAPIKey),
			Models:     h.cfg.GeminiModels,
			Status:     readiness(geminiReady),
			Quota:      quotaDescription(h.cfg.GeminiRatePerMinute),
		},
		OpenAI: OpenAIInfo{
			Configured: h.cfg.OpenAIAPIKey != "",
			Model:      h.cfg.OpenAIModel,
		},
		Circle: CircleInfo{
			Configured:   circleReady,
			APIKeyLength: len(h.cfg.CircleAPIKey),
			AppIDLength:  len(h.cfg.CircleAppID),
			Status:       readiness(circleReady),
			Sandbox:      !h.cfg.IsProduction(),
			Network:      models.NetworkArc,
		},
		Arc: NetworkInfo{
			Network:  models.NetworkArc,
			Currency: models.CurrencyUSDC,
			Finality: "sub-second deterministic",
		},
		Status: status,
		Features: map[string]bool{
			"aiGeneration":     status.GenerationReady,
			"usdcPayments":     status.PaymentReady,
			"realTransactions": status.PaymentReady,
			"priorityPlaylist": true,
			"agentAnalysis":    true,
		},
	})
}

func readiness(ok bool) string {
	if ok {
		return statusActive
	}
	return statusInvalid
}

func quotaDescription(perMinute int) string {
	if perMinute <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(perMinute) + " requests per minute"
}
