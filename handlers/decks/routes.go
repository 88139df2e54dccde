package decks

import (
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the deck routes. Views are open to anonymous users on public
// decks; everything that changes a deck requires its owner.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	decks := r.Group("/decks")

	public := decks.Group("", middleware.OptionalAuthMiddleware())
	{
		public.GET("/public", h.GetPublicDecks)
		public.GET("/:id", h.GetDeck)
		public.GET("/:id/breakdown", h.GetBreakdown)
		public.GET("/:id/grid", h.GetGrid)
		public.GET("/:id/export", h.ExportDeck)
		public.GET("/:id/image", h.GetDeckImage)
		public.GET("/:id/qr", h.GetDeckQR)
		public.GET("/:id/ws", h.DeckWebSocket)
		public.GET("/:id/comments", h.GetComments)
	}

	owner := decks.Group("", middleware.AuthMiddleware())
	{
		owner.GET("/", h.GetUserDecks)
		owner.POST("/", h.CreateDeck)
		owner.PUT("/:id", h.UpdateDeck)
		owner.DELETE("/:id", h.DeleteDeck)
		owner.POST("/:id/copy", h.CopyDeck)
		owner.POST("/:id/comments", h.PostComment)

		owner.POST("/:id/spells", h.AddSpell)
		owner.POST("/:id/spells/bulk", h.BulkAddSpells)
		owner.PUT("/:id/slots/:index", h.AddSpellToSlot)
		owner.PUT("/:id/spells/:index", h.ReplaceSpell)
		owner.DELETE("/:id/spells/:index", h.RemoveSpell)
		owner.POST("/:id/spells/bulk-remove", h.BulkRemoveSpells)
		owner.POST("/:id/spells/bulk-replace", h.BulkReplaceSpells)
		owner.POST("/:id/spells/move", h.MoveSpell)
		owner.POST("/:id/sort", h.SortSpells)
		owner.DELETE("/:id/spells", h.ClearSpells)
		owner.PUT("/:id/spells", h.SetSpells)
		owner.POST("/:id/import", h.ImportSpells)
		owner.POST("/:id/save", h.SaveDeck)
		owner.POST("/:id/match", h.MatchSpells)
	}
}
