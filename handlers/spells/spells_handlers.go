package spells

import (
	"errors"
	"net/http"
	"strconv"

	"deckbuilder/composer"
	"deckbuilder/logger"
	"deckbuilder/models"
	"deckbuilder/services"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchSpells lists catalog spells
// @Summary Search spells
// @Description Search the spell catalog. Results are cached.
// @Tags Spells
// @Produce json
// @Param school query string false "School"
// @Param card_type query string false "Card type"
// @Param effect query string false "Card effect"
// @Param pip query string false "Pip cost, X for variable"
// @Param q query string false "Words in name or description"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} services.SpellPage
// @Failure 400,500 {object} map[string]string
// @Router /spells/ [get]
func SearchSpells(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := services.SearchSpells(c.Request.Context(), services.SpellFilter{
		School:   c.Query("school"),
		CardType: c.Query("card_type"),
		Effect:   c.Query("effect"),
		Pip:      c.Query("pip"),
		Query:    c.Query("q"),
		Page:     page,
		Limit:    limit,
	})
	if errors.Is(err, services.ErrInvalidSchool) {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.L().Error("spell search failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToSearch)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSchools lists the schools and utility types used to filter spells
// @Summary List schools and utility types
// @Tags Spells
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /spells/schools [get]
func GetSchools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"schools":   models.Schools,
		"utilities": composer.UtilityOrder,
	})
}

// GetSpell returns one spell by name
// @Summary Get spell
// @Tags Spells
// @Produce json
// @Param name path string true "Spell name"
// @Success 200 {object} models.Spell
// @Failure 404,500 {object} map[string]string
// @Router /spells/{name} [get]
func GetSpell(c *gin.Context) {
	spell, err := services.GetSpellByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, services.ErrSpellNotFound) {
		response.Error(c, http.StatusNotFound, ErrSpellNotFound)
		return
	}
	if err != nil {
		logger.L().Error("spell lookup failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetSpell)
		return
	}
	c.JSON(http.StatusOK, spell)
}
