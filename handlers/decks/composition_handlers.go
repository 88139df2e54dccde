package decks

import (
	"errors"
	"net/http"
	"strconv"

	"deckbuilder/autosave"
	"deckbuilder/composer"
	"deckbuilder/config"
	"deckbuilder/logger"
	"deckbuilder/models"
	"deckbuilder/services"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type operation func(c *composer.Composer) (composer.Result, error)

// compose applies op to the session of the owned deck and answers with the new state
func (h *Handler) compose(c *gin.Context, deck *models.Deck, name string, op operation) {
	var result composer.Result
	snap, err := h.sessions.Apply(c.Request.Context(), deck.ID, name, func(cmp *composer.Composer) error {
		r, err := op(cmp)
		result = r
		return err
	})
	if err != nil {
		respondWithCompositionError(c, deck.ID, name, err)
		return
	}

	c.JSON(http.StatusOK, CompositionResponse{
		DeckID:  snap.DeckID,
		Version: snap.Version,
		Dirty:   snap.Dirty,
		Result:  result,
		Spells:  snap.Spells,
	})
}

// view reads the composition of a deck without changing it
func (h *Handler) view(c *gin.Context, deckID string, fn func(*composer.Composer)) (autosave.Snapshot, bool) {
	snap, err := h.sessions.View(c.Request.Context(), deckID, fn)
	if err != nil {
		respondWithCompositionError(c, deckID, "view", err)
		return autosave.Snapshot{}, false
	}
	return snap, true
}

func respondWithCompositionError(c *gin.Context, deckID, operation string, err error) {
	switch {
	case errors.Is(err, composer.ErrDeckFull):
		response.Error(c, http.StatusConflict, ErrDeckFull)
	case errors.Is(err, composer.ErrSlotOutOfRange),
		errors.Is(err, composer.ErrInvalidQuantity),
		errors.Is(err, composer.ErrUnknownSortKey),
		errors.Is(err, composer.ErrUnknownDirection),
		errors.Is(err, composer.ErrEmptySpell):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDeckNotFound):
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
	case errors.Is(err, autosave.ErrClosed):
		response.Error(c, http.StatusServiceUnavailable, ErrServiceClosing)
	default:
		logger.L().Error("composition failed",
			zap.String("deck_id", deckID), zap.String("operation", operation), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToCompose)
	}
}

// resolve turns spell names into deck references, writing the error response on failure
func resolve(c *gin.Context, names ...string) ([]models.SpellRef, bool) {
	refs, err := services.ResolveSpells(c.Request.Context(), names)
	if errors.Is(err, services.ErrSpellNotFound) {
		response.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err != nil {
		logger.L().Error("spell resolution failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToCompose)
		return nil, false
	}
	return refs, true
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidIndex)
		return 0, false
	}
	return index, true
}

// AddSpell appends copies of a spell, as many as the deck has room for
// @Summary Add spell
// @Description Appends quantity copies (default 1). Result.applied tells how many fit.
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param spell body AddSpellRequest true "Spell and quantity"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells [post]
// @Security Bearer
func (h *Handler) AddSpell(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req AddSpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	refs, ok := resolve(c, req.Name)
	if !ok {
		return
	}

	h.compose(c, deck, "add", func(cmp *composer.Composer) (composer.Result, error) {
		return cmp.AddSpell(refs[0], req.Quantity)
	})
}

// BulkAddSpells appends several spells in order until the deck is full
// @Summary Bulk add spells
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param spells body BulkAddRequest true "Spell names, one per copy"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/bulk [post]
// @Security Bearer
func (h *Handler) BulkAddSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req BulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	refs, ok := resolve(c, req.Names...)
	if !ok {
		return
	}

	h.compose(c, deck, "bulk_add", func(cmp *composer.Composer) (composer.Result, error) {
		return cmp.AddSpells(refs)
	})
}

// AddSpellToSlot puts a spell in a grid slot: an occupied slot is replaced, an empty one is filled
// @Summary Add spell to slot
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param index path int true "Slot index (0-63)"
// @Param spell body SpellRequest true "Spell"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/slots/{index} [put]
// @Security Bearer
func (h *Handler) AddSpellToSlot(c *gin.Context) {
	h.slotOperation(c, "add_to_slot", func(cmp *composer.Composer, index int, spell models.SpellRef) error {
		return cmp.AddSpellToSlot(index, spell)
	})
}

// ReplaceSpell replaces the spell of an occupied slot
// @Summary Replace spell
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param index path int true "Slot index"
// @Param spell body SpellRequest true "Spell"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/{index} [put]
// @Security Bearer
func (h *Handler) ReplaceSpell(c *gin.Context) {
	h.slotOperation(c, "replace", func(cmp *composer.Composer, index int, spell models.SpellRef) error {
		return cmp.ReplaceSpell(index, spell)
	})
}

func (h *Handler) slotOperation(c *gin.Context, name string, apply func(*composer.Composer, int, models.SpellRef) error) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req SpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	refs, ok := resolve(c, req.Name)
	if !ok {
		return
	}

	h.compose(c, deck, name, func(cmp *composer.Composer) (composer.Result, error) {
		if err := apply(cmp, index, refs[0]); err != nil {
			return composer.Result{Requested: 1}, err
		}
		return composer.Result{Requested: 1, Applied: 1}, nil
	})
}

// RemoveSpell removes one slot; later spells shift left
// @Summary Remove spell
// @Tags Composition
// @Produce json
// @Param id path string true "Deck ID"
// @Param index path int true "Slot index"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/{index} [delete]
// @Security Bearer
func (h *Handler) RemoveSpell(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	h.compose(c, deck, "remove", func(cmp *composer.Composer) (composer.Result, error) {
		if err := cmp.RemoveSpell(index); err != nil {
			return composer.Result{Requested: 1}, err
		}
		return composer.Result{Requested: 1, Applied: 1}, nil
	})
}

// BulkRemoveSpells removes a set of slots; unknown indices are ignored
// @Summary Bulk remove spells
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param indices body BulkRemoveRequest true "Slot indices"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/bulk-remove [post]
// @Security Bearer
func (h *Handler) BulkRemoveSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req BulkRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.compose(c, deck, "bulk_remove", func(cmp *composer.Composer) (composer.Result, error) {
		return cmp.BulkRemove(req.Indices), nil
	})
}

// BulkReplaceSpells puts the same spell in every listed slot
// @Summary Bulk replace spells
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param request body BulkReplaceRequest true "Slot indices and spell"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/bulk-replace [post]
// @Security Bearer
func (h *Handler) BulkReplaceSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req BulkReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	refs, ok := resolve(c, req.Name)
	if !ok {
		return
	}

	h.compose(c, deck, "bulk_replace", func(cmp *composer.Composer) (composer.Result, error) {
		return cmp.BulkReplace(req.Indices, refs[0])
	})
}

// MoveSpell moves one spell to another position
// @Summary Move spell
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param move body MoveRequest true "From and to indices"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells/move [post]
// @Security Bearer
func (h *Handler) MoveSpell(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.compose(c, deck, "move", func(cmp *composer.Composer) (composer.Result, error) {
		if err := cmp.Move(*req.From, *req.To); err != nil {
			return composer.Result{Requested: 1}, err
		}
		return composer.Result{Requested: 1, Applied: 1}, nil
	})
}

// SortSpells reorders the deck by school, pip cost or utility
// @Summary Sort spells
// @Description Ties on the sort key are ordered by pip cost ascending.
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param sort body SortRequest true "Key (school, pips, utility) and direction (asc, desc)"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/sort [post]
// @Security Bearer
func (h *Handler) SortSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.compose(c, deck, "sort", func(cmp *composer.Composer) (composer.Result, error) {
		n := cmp.Len()
		if err := cmp.Sort(composer.SortKey(req.Key), composer.Direction(req.Direction)); err != nil {
			return composer.Result{Requested: n}, err
		}
		return composer.Result{Requested: n, Applied: n}, nil
	})
}

// ClearSpells empties the deck
// @Summary Clear deck
// @Tags Composition
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} CompositionResponse
// @Failure 401,404 {object} map[string]string
// @Router /decks/{id}/spells [delete]
// @Security Bearer
func (h *Handler) ClearSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	h.compose(c, deck, "clear", func(cmp *composer.Composer) (composer.Result, error) {
		n := cmp.Clear()
		return composer.Result{Requested: n, Applied: n}, nil
	})
}

// SetSpells replaces the whole sequence
// @Summary Set deck spells
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param spells body SetSpellsRequest true "Spell names in slot order, at most 64"
// @Success 200 {object} CompositionResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/spells [put]
// @Security Bearer
func (h *Handler) SetSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var req SetSpellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	h.resetSpells(c, deck, "set", req.Names)
}

func (h *Handler) resetSpells(c *gin.Context, deck *models.Deck, name string, names []string) {
	if len(names) > config.DeckCapacity {
		response.Error(c, http.StatusBadRequest, ErrTooManySpells)
		return
	}
	refs, ok := resolve(c, names...)
	if !ok {
		return
	}

	h.compose(c, deck, name, func(cmp *composer.Composer) (composer.Result, error) {
		if err := cmp.Reset(refs); err != nil {
			return composer.Result{Requested: len(refs)}, err
		}
		return composer.Result{Requested: len(refs), Applied: len(refs)}, nil
	})
}

// SaveDeck writes pending changes right away instead of waiting for the autosave
// @Summary Save deck now
// @Tags Composition
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} map[string]string
// @Failure 401,404,500 {object} map[string]string
// @Router /decks/{id}/save [post]
// @Security Bearer
func (h *Handler) SaveDeck(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	if err := h.sessions.Flush(c.Request.Context(), deck.ID); err != nil {
		logger.L().Error("explicit save failed", zap.String("deck_id", deck.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToSave)
		return
	}
	response.Message(c, http.StatusOK, DeckSavedMessage)
}

// MatchSpells returns the slots matching a filter, to drive bulk operations
// @Summary Match spells
// @Tags Composition
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param filter body composer.Filter true "Filter"
// @Success 200 {object} MatchResponse
// @Failure 400,401,404 {object} map[string]string
// @Router /decks/{id}/match [post]
// @Security Bearer
func (h *Handler) MatchSpells(c *gin.Context) {
	deck, ok := h.ownedDeck(c)
	if !ok {
		return
	}
	var filter composer.Filter
	if err := c.ShouldBindJSON(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var indices []int
	if _, ok := h.view(c, deck.ID, func(cmp *composer.Composer) { indices = cmp.Match(filter) }); !ok {
		return
	}
	c.JSON(http.StatusOK, MatchResponse{DeckID: deck.ID, Indices: indices})
}
