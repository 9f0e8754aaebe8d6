package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

type HealthHandler struct {
	jukebox *services.Jukebox
}

func NewHealthHandler(jukebox *services.Jukebox) *HealthHandler {
	return &HealthHandler{jukebox: jukebox}
}

// HealthCheck returns the health status of the API. Degraded integrations
// do not make the service unhealthy since every operation has a fallback.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := h.jukebox.CheckConfiguration()

	generation := "fallback_only"
	if status.GenerationReady {
		generation = "enabled"
	}
	payment := paymentStatusDemo
	if status.PaymentReady {
		payment = paymentStatusReady
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"generation": generation,
		"payment":    payment,
	})
}
