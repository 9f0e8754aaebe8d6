package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

type GenerationHandler struct {
	jukebox *services.Jukebox
	cfg     *config.Config
}

func NewGenerationHandler(jukebox *services.Jukebox, cfg *config.Config) *GenerationHandler {
	return &GenerationHandler{jukebox: jukebox, cfg: cfg}
}

// GenerateRequest is decoded leniently: any prompt value is accepted and
// validated by the pipeline
type GenerateRequest struct {
	Prompt any `json:"prompt"`
}

// Generate always answers 200 with a complete song. Unreadable bodies are
// treated as an empty prompt.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if body, err := c.GetRawData(); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			logger.Debug("Unreadable generate body, using empty prompt", logger.WithContext(c))
			req = GenerateRequest{}
		}
	}
	if p, ok := req.Prompt.(string); ok {
		c.Set("prompt_length", len(p))
	}

	song := h.jukebox.Generate(c.Request.Context(), req.Prompt)

	if song.Provenance.IsReal {
		c.Header(songSourceHeader, songSourceReal)
	} else {
		c.Header(songSourceHeader, songSourceCached)
	}
	c.JSON(http.StatusOK, song)
}

// Status reports whether generation can reach a provider and which models it tries
func (h *GenerationHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"geminiConfigured": h.cfg.IsGeminiConfigured(),
		"models":           h.jukebox.Models(),
	})
}
