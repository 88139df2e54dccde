package decks

import (
	"errors"
	"net/http"
	"strconv"

	"deckbuilder/composer"
	"deckbuilder/logger"
	"deckbuilder/middleware"
	"deckbuilder/models"
	"deckbuilder/services"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserDecks lists the decks of the authenticated user
// @Summary List my decks
// @Tags Decks
// @Produce json
// @Success 200 {array} models.Deck
// @Failure 401,500 {object} map[string]string
// @Router /decks/ [get]
// @Security Bearer
func (h *Handler) GetUserDecks(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	decks, err := services.GetUserDecks(c.Request.Context(), user.ID)
	if err != nil {
		logger.L().Error("failed to list decks", zap.String("user_id", user.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetDecks)
		return
	}
	c.JSON(http.StatusOK, decks)
}

// GetPublicDecks lists the decks shared by every user
// @Summary List public decks
// @Tags Decks
// @Produce json
// @Param school query string false "School"
// @Param pve query bool false "PvE decks only (true) or PvP only (false)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} PublicDecksResponse
// @Failure 400,500 {object} map[string]string
// @Router /decks/public [get]
func (h *Handler) GetPublicDecks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := services.PublicDeckFilter{School: c.Query("school"), Page: page, Limit: limit}
	if raw := c.Query("pve"); raw != "" {
		pve, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "pve must be true or false")
			return
		}
		filter.IsPve = &pve
	}

	decks, total, err := services.GetPublicDecks(c.Request.Context(), filter)
	if errors.Is(err, services.ErrInvalidSchool) {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.L().Error("failed to list public decks", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetDecks)
		return
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	c.JSON(http.StatusOK, PublicDecksResponse{Decks: decks, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// GetDeck returns a deck with its current, possibly not yet saved, spells
// @Summary Get deck
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} models.Deck
// @Failure 404,500 {object} map[string]string
// @Router /decks/{id} [get]
func (h *Handler) GetDeck(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	snap, ok := h.view(c, deck.ID, func(*composer.Composer) {})
	if !ok {
		return
	}
	deck.Spells = snap.Spells
	c.JSON(http.StatusOK, deck)
}

// CreateDeck creates an empty deck
// @Summary Create deck
// @Tags Decks
// @Accept json
// @Produce json
// @Param deck body DeckRequest true "Deck"
// @Success 201 {object} models.Deck
// @Failure 400,401,500 {object} map[string]string
// @Router /decks/ [post]
// @Security Bearer
func (h *Handler) CreateDeck(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req DeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := services.CreateDeck(c.Request.Context(), user.ID, services.DeckInput{
		Name:          req.Name,
		School:        req.School,
		Level:         req.Level,
		WeavingSchool: req.WeavingSchool,
		Description:   req.Description,
		IsPve:         req.IsPve,
		IsPublic:      req.IsPublic,
		CanComment:    req.CanComment,
	})
	if isValidationError(err) {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.L().Error("failed to create deck", zap.String("user_id", user.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToCreateDeck)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

// UpdateDeck changes deck metadata; spells are edited through the composition routes
// @Summary Update deck
// @Tags Decks
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param deck body DeckPatchRequest true "Fields to change"
// @Success 200 {object} models.Deck
// @Failure 400,401,404,500 {object} map[string]string
// @Router /decks/{id} [put]
// @Security Bearer
func (h *Handler) UpdateDeck(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req DeckPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := services.UpdateDeck(c.Request.Context(), user.ID, c.Param("id"), services.DeckPatch{
		Name:          req.Name,
		School:        req.School,
		Level:         req.Level,
		WeavingSchool: req.WeavingSchool,
		ClearWeaving:  req.ClearWeaving,
		Description:   req.Description,
		IsPve:         req.IsPve,
		IsPublic:      req.IsPublic,
		CanComment:    req.CanComment,
	})
	switch {
	case errors.Is(err, services.ErrDeckNotFound):
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return
	case isValidationError(err):
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.L().Error("failed to update deck", zap.String("deck_id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToUpdateDeck)
		return
	}
	c.JSON(http.StatusOK, deck)
}

// DeleteDeck removes a deck. A user always keeps at least one deck.
// @Summary Delete deck
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} map[string]string
// @Failure 401,404,409,500 {object} map[string]string
// @Router /decks/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteDeck(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	deckID := c.Param("id")

	err = services.DeleteDeck(c.Request.Context(), user.ID, deckID)
	switch {
	case errors.Is(err, services.ErrDeckNotFound):
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return
	case errors.Is(err, services.ErrLastDeck):
		response.Error(c, http.StatusConflict, ErrLastDeck)
		return
	case err != nil:
		logger.L().Error("failed to delete deck", zap.String("deck_id", deckID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToDeleteDeck)
		return
	}

	h.sessions.Evict(deckID)
	response.Message(c, http.StatusOK, DeckDeletedMessage)
}

// CopyDeck copies a visible deck into the authenticated user's decks
// @Summary Copy deck
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 201 {object} models.Deck
// @Failure 401,404,500 {object} map[string]string
// @Router /decks/{id}/copy [post]
// @Security Bearer
func (h *Handler) CopyDeck(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	source, ok := h.visibleDeck(c)
	if !ok {
		return
	}
	snap, ok := h.view(c, source.ID, func(*composer.Composer) {})
	if !ok {
		return
	}

	deck, err := services.CopyDeck(c.Request.Context(), user.ID, source, snap.Spells)
	if err != nil {
		logger.L().Error("failed to copy deck", zap.String("deck_id", source.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToCreateDeck)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

// isValidationError reports deck input errors caused by the client
func isValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidSchool) ||
		errors.Is(err, services.ErrInvalidLevel) ||
		errors.Is(err, services.ErrInvalidDeckName)
}

// visibleDeck loads the deck of the :id param for the current (possibly anonymous) user
func (h *Handler) visibleDeck(c *gin.Context) (*models.Deck, bool) {
	deck, err := services.GetVisibleDeck(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if errors.Is(err, services.ErrDeckNotFound) {
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return nil, false
	}
	if err != nil {
		logger.L().Error("failed to load deck", zap.String("deck_id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetDecks)
		return nil, false
	}
	return deck, true
}

// ownedDeck loads the deck of the :id param when the current user owns it
func (h *Handler) ownedDeck(c *gin.Context) (*models.Deck, bool) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return nil, false
	}
	deck, err := services.GetOwnedDeck(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, services.ErrDeckNotFound) {
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return nil, false
	}
	if err != nil {
		logger.L().Error("failed to load deck", zap.String("deck_id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetDecks)
		return nil, false
	}
	return deck, true
}
