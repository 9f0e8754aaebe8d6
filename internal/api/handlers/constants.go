package handlers

const (
	// Prioritized songs are always reported at this priority
	priorityHigh = "HIGH"

	// Payment status strings for GET /api/prioritize
	paymentStatusReady = "ready_for_real_transactions"
	paymentStatusDemo  = "demo_mode"

	demoInstructions = "Configure CIRCLE_API_KEY and CIRCLE_APP_ID for real transactions"

	// Response header marking whether a song came from a provider or the catalog
	songSourceHeader = "X-Song-Source"
	songSourceReal   = "provider"
	songSourceCached = "fallback"
)
