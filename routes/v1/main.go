package v1

import (
	"deckbuilder/handlers/auth"
	"deckbuilder/handlers/decks"
	"deckbuilder/handlers/spells"
	"deckbuilder/handlers/users"
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies are the stateful services the v1 handlers need
type Dependencies struct {
	Decks *decks.Handler
}

// Register the endpoints for the v1 API
func Register(r *gin.Engine, deps Dependencies) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter("api", 6000, 600) // 100 requests per second, 600 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	users.RegisterRoutes(v1)
	spells.RegisterRoutes(v1)
	deps.Decks.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
