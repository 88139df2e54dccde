package auth

import (
	"errors"
	"net/http"

	"deckbuilder/logger"
	"deckbuilder/services"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestPasswordReset initiates the password reset process
// @Summary Request Password Reset
// @Description Send a password reset link to the user's email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RequestPasswordResetRequest true "Email Request"
// @Success 200 {object} map[string]string
// @Failure 400,500 {object} map[string]string
// @Router /auth/request-reset [post]
func RequestPasswordReset(c *gin.Context) {
	var req RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := services.CreatePasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		logger.L().Error("password reset creation failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrResetFailed)
		return
	}
	if user == nil {
		// Same answer for unknown emails to prevent enumeration
		response.Message(c, http.StatusOK, ResetRequestedMessage)
		return
	}

	emailService := services.NewEmailService()
	if err := emailService.SendPasswordResetEmail(user.Email, token); err != nil {
		logger.L().Error("password reset email failed", zap.String("user_id", user.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrResetEmailFailed)
		return
	}

	response.Message(c, http.StatusOK, ResetRequestedMessage)
}

// ResetPassword handles the password reset
// @Summary Reset Password
// @Description Reset user password using the reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset Request"
// @Success 200 {object} map[string]string
// @Failure 400,500 {object} map[string]string
// @Router /auth/reset-password [post]
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err := services.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if errors.Is(err, services.ErrInvalidResetToken) {
		response.Error(c, http.StatusBadRequest, ErrInvalidResetToken)
		return
	}
	if err != nil {
		logger.L().Error("password reset failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrResetFailed)
		return
	}

	response.Message(c, http.StatusOK, PasswordResetMessage)
}
