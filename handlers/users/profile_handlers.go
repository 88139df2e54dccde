package users

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

// GetUserProfile retrieves the authenticated user's profile
// @Summary Get User Profile
// @Description Get the profile information of the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user/profile [get]
// @Security Bearer
func GetUserProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUserProfile updates the authenticated user's profile
// @Summary Update User Profile
// @Description Update the username and email of the authenticated user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body ProfileUpdate true "User Profile"
// @Success 200 {object} models.User
// @Failure 400,401,409,500 {object} map[string]string
// @Router /user/profile [put]
// @Security Bearer
func UpdateUserProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := services.UpdateProfile(c.Request.Context(), user.ID, update.Username, update.Email)
	switch {
	case errors.Is(err, services.ErrEmailInUse):
		response.Error(c, http.StatusConflict, ErrEmailInUse)
		return
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	case err != nil:
		logger.L().Error("profile update failed", zap.String("user_id", user.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToUpdate)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateUserPassword updates the current user's password
// @Summary Update User Password
// @Description Update the password of the current user
// @Tags Users
// @Accept json
// @Produce json
// @Param passwords body PasswordUpdate true "Password Update"
// @Success 200 {object} map[string]string
// @Failure 400,401,500 {object} map[string]string
// @Router /user/profile/password [put]
// @Security Bearer
func UpdateUserPassword(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var passwordUpdate PasswordUpdate
	if err := c.ShouldBindJSON(&passwordUpdate); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err = services.ChangePassword(c.Request.Context(), user.ID, passwordUpdate.CurrentPassword, passwordUpdate.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, ErrWrongCurrentPassword)
		return
	}
	if err != nil {
		logger.L().Error("password update failed", zap.String("user_id", user.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrFailedToUpdatePass)
		return
	}

	response.Message(c, http.StatusOK, PasswordUpdatedMessage)
}
