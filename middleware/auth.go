package middleware

import (
	"errors"
	"net/http"
	"strings"

	"deckbuilder/logger"
	"deckbuilder/models"
	"deckbuilder/services"
	"deckbuilder/utils"
	"deckbuilder/utils/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AuthCookieName = "auth_token"

	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

const (
	ErrNoTokenProvided  = "No token provided"
	ErrInvalidToken     = "Invalid or expired token"
	ErrAccountBlocked   = "Your account has been blocked"
	ErrNotAuthenticated = "Not authenticated"
)

var errNoToken = errors.New("no token")

// TokenFromRequest reads the bearer token, the auth cookie or, for websocket
// upgrades, the token query parameter
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return c.Query("token")
	}
	return ""
}

// authenticate resolves the request's token to a user and stores both in the context
func authenticate(c *gin.Context) (int, string, error) {
	token := TokenFromRequest(c)
	if token == "" {
		return http.StatusUnauthorized, ErrNoTokenProvided, errNoToken
	}

	claims, err := utils.ParseJWT(token)
	if err != nil {
		return http.StatusUnauthorized, ErrInvalidToken, err
	}

	revoked, err := services.IsTokenRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// redis being down must not log everybody out
		logger.L().Warn("token revocation check failed", zap.Error(err))
	}
	if revoked {
		return http.StatusUnauthorized, ErrInvalidToken, utils.ErrInvalidToken
	}

	user, err := services.GetSessionUser(c.Request.Context(), claims.UserID)
	if err != nil {
		return http.StatusUnauthorized, ErrInvalidToken, err
	}
	if user.Blocked {
		return http.StatusForbidden, ErrAccountBlocked, services.ErrAccountBlocked
	}

	c.Set(ContextUser, user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextClaims, claims)
	return http.StatusOK, "", nil
}

// AuthMiddleware rejects requests without a valid, unrevoked token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if status, message, err := authenticate(c); err != nil {
			response.Error(c, status, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the user when a valid token is present and
// lets anonymous requests through otherwise
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, _, err := authenticate(c); err != nil && !errors.Is(err, errNoToken) {
			logger.L().Debug("ignoring invalid token on public route", zap.Error(err))
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user. When there is none it
// writes a 401 response and returns an error the handler just returns on.
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	if value, ok := c.Get(ContextUser); ok {
		if user, ok := value.(*models.User); ok {
			return user, nil
		}
	}
	response.Error(c, http.StatusUnauthorized, ErrNotAuthenticated)
	return nil, errors.New(ErrNotAuthenticated)
}

// GetUserID returns the authenticated user id, or "" for anonymous requests
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// GetClaims returns the claims of the request's token
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
