package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/logger"
	"github.com/Conceptual-Machines/jukebox-api/internal/models"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

type PaymentHandler struct {
	jukebox *services.Jukebox
}

func NewPaymentHandler(jukebox *services.Jukebox) *PaymentHandler {
	return &PaymentHandler{jukebox: jukebox}
}

type PrioritizeRequest struct {
	SongTitle string `json:"songTitle"`
	Artist    string `json:"artist"`
	Amount    string `json:"amount"`
}

type TransactionView struct {
	ID            string               `json:"id"`
	TransactionID string               `json:"transactionId"`
	Amount        string               `json:"amount"`
	Currency      string               `json:"currency"`
	Network       string               `json:"network"`
	Status        models.PaymentStatus `json:"status"`
	SettledAt     time.Time            `json:"settledAt"`
	Note          string               `json:"note,omitempty"`
}

type PrioritizedSongView struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Priority string `json:"priority"`
	Position int    `json:"position"`
	Boosts   int    `json:"boosts"`
}

type PrioritizeResponse struct {
	Success      bool                `json:"success"`
	Demo         bool                `json:"demo"`
	Transaction  TransactionView     `json:"transaction"`
	Song         PrioritizedSongView `json:"song"`
	Instructions string              `json:"instructions,omitempty"`
}

// Prioritize always answers 200 with a confirmed record. Missing fields
// fall back to the pipeline defaults.
func (h *PaymentHandler) Prioritize(c *gin.Context) {
	var req PrioritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Unreadable prioritize body, using defaults", logger.WithContext(c))
		req = PrioritizeRequest{}
	}

	rec := h.jukebox.Prioritize(c.Request.Context(), models.SongRef{Title: req.SongTitle, Artist: req.Artist}, req.Amount)

	resp := PrioritizeResponse{
		Success: true,
		Demo:    rec.IsSimulated,
		Transaction: TransactionView{
			ID:            rec.ID,
			TransactionID: rec.TransactionID,
			Amount:        rec.AmountRequested,
			Currency:      rec.Currency,
			Network:       rec.Network,
			Status:        rec.Status,
			SettledAt:     rec.SettledAt,
			Note:          rec.Note,
		},
		Song: PrioritizedSongView{
			Title:    rec.SongTitle,
			Artist:   rec.Artist,
			Priority: priorityHigh,
			Position: rec.Position,
			Boosts:   rec.Boosts,
		},
	}
	if !h.jukebox.PaymentConfigured() {
		resp.Instructions = demoInstructions
	}
	c.JSON(http.StatusOK, resp)
}

// Status reports whether real Circle transfers will be attempted
func (h *PaymentHandler) Status(c *gin.Context) {
	configured := h.jukebox.PaymentConfigured()
	status := paymentStatusDemo
	if configured {
		status = paymentStatusReady
	}
	c.JSON(http.StatusOK, gin.H{
		"circleConfigured": configured,
		"status":           status,
	})
}

// Playlist lists prioritized songs, most recent first
func (h *PaymentHandler) Playlist(c *gin.Context) {
	entries, err := h.jukebox.Playlist(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list playlist", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load playlist"})
		return
	}
	if entries == nil {
		entries = []models.PlaylistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"songs": entries,
		"count": len(entries),
	})
}

// ResetPlaylist empties the playlist
func (h *PaymentHandler) ResetPlaylist(c *gin.Context) {
	if err := h.jukebox.ResetPlaylist(c.Request.Context()); err != nil {
		logger.Error("Failed to reset playlist", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset playlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
