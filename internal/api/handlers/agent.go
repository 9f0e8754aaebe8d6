package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

type AgentHandler struct {
	jukebox *services.Jukebox
}

func NewAgentHandler(jukebox *services.Jukebox) *AgentHandler {
	return &AgentHandler{jukebox: jukebox}
}

type AnalyzeRequest struct {
	Song     *models.GeneratedSong `json:"song" binding:"required"`
	AutoMode bool                  `json:"autoMode"`
}

func (h *AgentHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Song.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "song.title is required"})
		return
	}

	c.JSON(http.StatusOK, h.jukebox.Analyze(c.Request.Context(), *req.Song, req.AutoMode))
}

func (h *AgentHandler) Decisions(c *gin.Context) {
	decisions := h.jukebox.Decisions()
	c.JSON(http.StatusOK, gin.H{
		"decisions": decisions,
		"count":     len(decisions),
	})
}

func (h *AgentHandler) ClearDecisions(c *gin.Context) {
	h.jukebox.ClearDecisions()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
