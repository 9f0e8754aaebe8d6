package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/jukebox-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/jukebox-api/internal/api/middleware"
	"github.com/Conceptual-Machines/jukebox-api/internal/config"
	"github.com/Conceptual-Machines/jukebox-api/internal/metrics"
	"github.com/Conceptual-Machines/jukebox-api/internal/services"
)

func SetupRouter(jukebox *services.Jukebox, cfg *config.Config, recorder *metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSOrigins...))

	// Health check
	healthHandler := handlers.NewHealthHandler(jukebox)
	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Metrics endpoint
		metricsHandler := handlers.NewMetricsHandler(jukebox, version)
		api.GET("/metrics", metricsHandler.GetMetrics)

		// Configuration report
		configHandler := handlers.NewConfigHandler(jukebox, cfg, version)
		api.GET("/config", configHandler.GetConfig)

		// Song generation
		generationHandler := handlers.NewGenerationHandler(jukebox, cfg)
		api.POST("/generate", generationHandler.Generate)
		api.GET("/generate", generationHandler.Status)

		// Prioritization payments and the playlist they feed
		paymentHandler := handlers.NewPaymentHandler(jukebox)
		api.POST("/prioritize", paymentHandler.Prioritize)
		api.GET("/prioritize", paymentHandler.Status)
		api.GET("/playlist", paymentHandler.Playlist)
		api.DELETE("/playlist", paymentHandler.ResetPlaylist)

		// Agent analysis and decision log
		agentHandler := handlers.NewAgentHandler(jukebox)
		api.POST("/agent/analyze", agentHandler.Analyze)
		api.GET("/agent/decisions", agentHandler.Decisions)
		api.DELETE("/agent/decisions", agentHandler.ClearDecisions)
	}

	return router
}
