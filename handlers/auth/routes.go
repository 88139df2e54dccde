package auth

import (
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to authentication
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// brute force protection on top of the per account login cooldown
	limiter := middleware.NewRateLimiter("auth", 20, 30)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimiterMiddleware(limiter))
	{
		auth.POST("/login", Login)
		auth.GET("/check", middleware.AuthMiddleware(), CheckAuth)
		auth.POST("/register", RegisterUser)
		auth.POST("/logout", middleware.OptionalAuthMiddleware(), Logout)
		auth.POST("/request-reset", RequestPasswordReset)
		auth.POST("/reset-password", ResetPassword)
	}
}
