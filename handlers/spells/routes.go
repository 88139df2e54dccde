package spells

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public catalog routes
func RegisterRoutes(r *gin.RouterGroup) {
	spells := r.Group("/spells")
	{
		spells.GET("/", SearchSpells)
		spells.GET("/schools", GetSchools)
		spells.GET("/:name", GetSpell)
	}
}
