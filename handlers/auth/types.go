package auth

import (
	"net/http"
	"time"

	"deckbuilder/config"
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrInvalidCredentials  = "Invalid credentials"
	ErrAccountBlocked      = "Your account has been blocked"
	ErrEmailInUse          = "Email already in use"
	ErrUserCreateFailed    = "Failed to create user"
	ErrTokenGenerateFailed = "Failed to generate token"
	ErrInvalidExpiredToken = "Invalid or expired token"
	ErrLogoutFailed        = "Failed to logout"
	ErrLogoutSuccess       = "Successfully logged out"
	ErrTooManyAttempts     = "Too many failed login attempts, try again later"
	ErrLoginFailed         = "Failed to process login"
	ErrResetFailed         = "Failed to process request"
	ErrResetEmailFailed    = "Failed to send reset email"
	ErrInvalidResetToken   = "Invalid or expired reset token"
	ResetRequestedMessage  = "If the email exists, a reset link will be sent"
	PasswordResetMessage   = "Password has been reset successfully"
)

// LoginRequest model for login endpoints
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest model for registration. School picks the starter deck's school (Fire by default).
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=2,max=50"`
	School   string `json:"school"`
}

// AuthResponse model for authentication responses
type AuthResponse struct {
	Token         string     `json:"token"`
	ExpiresAt     time.Time  `json:"expires_at"`
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	LastConnected *time.Time `json:"last_connected"`
	Blocked       bool       `json:"blocked"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// tokenLifetime is the session length, longer when the user asked to be remembered
func tokenLifetime(rememberMe bool) time.Duration {
	if rememberMe {
		return 30 * 24 * time.Hour
	}
	return config.JWTExpiration
}

// setCookieToken sets the authentication token as a secure HTTP-only cookie
func setCookieToken(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookieName,
		token,
		int(maxAge.Seconds()),
		"/",
		"",
		config.IsProduction(), // secure (HTTPS only)
		true,                  // httpOnly
	)
}
