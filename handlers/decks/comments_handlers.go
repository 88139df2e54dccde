package decks

import (
	"errors"
	"net/http"

	"deckbuilder/logger"
	"deckbuilder/middleware"
	"deckbuilder/services"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetComments lists the comments of a deck
// @Summary List deck comments
// @Tags Comments
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {array} models.Comment
// @Failure 404,500 {object} map[string]string
// @Router /decks/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	comments, err := services.GetDeckComments(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if errors.Is(err, services.ErrDeckNotFound) {
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return
	}
	if err != nil {
		logger.L().Error("failed to list comments", zap.String("deck_id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetComments)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// PostComment comments on a public deck that accepts comments
// @Summary Comment on a deck
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Deck ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /decks/{id}/comments [post]
// @Security Bearer
func (h *Handler) PostComment(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := services.AddComment(c.Request.Context(), user.ID, c.Param("id"), req.Body)
	switch {
	case errors.Is(err, services.ErrDeckNotFound):
		response.Error(c, http.StatusNotFound, ErrDeckNotFound)
		return
	case errors.Is(err, services.ErrCommentsDisabled):
		response.Error(c, http.StatusForbidden, ErrCommentsDisabled)
		return
	case errors.Is(err, services.ErrInvalidComment):
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.L().Error("failed to post comment", zap.String("deck_id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToPostComment)
		return
	}
	comment.User = user
	c.JSON(http.StatusCreated, comment)
}
