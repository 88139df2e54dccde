package users

import (
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes of the authenticated user's account
func RegisterRoutes(r *gin.RouterGroup) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", GetUserProfile)
		user.PUT("/profile", UpdateUserProfile)
		user.PUT("/profile/password", UpdateUserPassword)
	}
}
