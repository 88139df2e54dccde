package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deckbuilder/config"
	"deckbuilder/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestRequestValidation(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"login without password", "/api/v1/auth/login", `{"email":"a@example.com"}`},
		{"login with bad email", "/api/v1/auth/login", `{"email":"nope","password":"x"}`},
		{"register short password", "/api/v1/auth/register", `{"email":"a@example.com","password":"short","username":"ab"}`},
		{"register without username", "/api/v1/auth/register", `{"email":"a@example.com","password":"long-enough"}`},
		{"reset without token", "/api/v1/auth/reset-password", `{"password":"long-enough"}`},
		{"reset request bad email", "/api/v1/auth/request-reset", `{"email":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCheckAuthWithoutToken(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/check", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestTokenLifetime(t *testing.T) {
	previous := config.JWTExpiration
	t.Cleanup(func() { config.JWTExpiration = previous })
	config.JWTExpiration = 2 * time.Hour

	assert.Equal(t, 2*time.Hour, tokenLifetime(false))
	assert.Equal(t, 30*24*time.Hour, tokenLifetime(true))
}
