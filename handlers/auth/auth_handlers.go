package auth

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"deckbuilder/logger"
	"deckbuilder/middleware"
	"deckbuilder/models"
	"deckbuilder/services"
	"deckbuilder/utils"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login authenticates a user and returns a token
// @Summary Login
// @Description Authenticate with email and password. Repeated failures trigger a cooldown.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401,403,429 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := services.Authenticate(c.Request.Context(), req.Email, req.Password)
	var cooldown *services.CooldownError
	switch {
	case errors.As(err, &cooldown):
		c.Header("Retry-After", strconv.Itoa(int(cooldown.RetryAfter.Seconds())+1))
		response.Error(c, http.StatusTooManyRequests, ErrTooManyAttempts)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	case errors.Is(err, services.ErrAccountBlocked):
		response.Error(c, http.StatusForbidden, ErrAccountBlocked)
		return
	case err != nil:
		logger.L().Error("login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrLoginFailed)
		return
	}

	issueToken(c, user, req.RememberMe, http.StatusOK)
}

// RegisterUser creates an account and its starter deck
// @Summary Register
// @Description Create an account. A first empty deck is created for the new user.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account"
// @Success 201 {object} AuthResponse
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := services.RegisterUser(c.Request.Context(), req.Email, req.Username, req.Password, req.School)
	switch {
	case errors.Is(err, services.ErrEmailInUse):
		response.Error(c, http.StatusConflict, ErrEmailInUse)
		return
	case errors.Is(err, services.ErrInvalidSchool):
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.L().Error("registration failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	issueToken(c, user, false, http.StatusCreated)
}

func issueToken(c *gin.Context, user *models.User, rememberMe bool, status int) {
	ttl := tokenLifetime(rememberMe)
	token, claims, err := utils.GenerateJWT(user.ID, ttl)
	if err != nil {
		logger.L().Error("token generation failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}
	setCookieToken(c, token, ttl)

	c.JSON(status, AuthResponse{
		Token:         token,
		ExpiresAt:     claims.ExpiresAt.Time,
		UserID:        user.ID,
		Email:         user.Email,
		Username:      user.Username,
		LastConnected: user.LastConnected,
		Blocked:       user.Blocked,
	})
}

// CheckAuth returns the user behind the current token
// @Summary Check authentication
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout revokes the current token and clears the cookie
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	if claims, ok := middleware.GetClaims(c); ok {
		if err := services.RevokeToken(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			logger.L().Error("token revocation failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, ErrLogoutFailed)
			return
		}
	}
	setCookieToken(c, "", -time.Second)
	response.Message(c, http.StatusOK, ErrLogoutSuccess)
}
