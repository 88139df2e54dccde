package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"deckbuilder/autosave"
	"deckbuilder/config"
	"deckbuilder/handlers/decks"
	"deckbuilder/models"
	"deckbuilder/render"
	v1 "deckbuilder/routes/v1"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type nopStore struct{}

func (nopStore) LoadDeckSpells(context.Context, string) ([]models.SpellRef, error) { return nil, nil }
func (nopStore) SaveDeckSpells(context.Context, string, []models.SpellRef) error { return nil }

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := autosave.NewManager(nopStore{}, autosave.Options{})
	t.Cleanup(func() { _ = sessions.Close(context.Background()) })
	return New(v1.Dependencies{Decks: decks.NewHandler(sessions, render.NewRenderer(nil), nil)})
}

func TestRouter(t *testing.T) {
	r := newTestEngine(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"ping", http.MethodGet, "/api/v1/ping", http.StatusOK},
		{"metrics", http.MethodGet, "/api/v1/metrics", http.StatusOK},
		{"swagger", http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{"profile needs auth", http.MethodGet, "/api/v1/user/profile", http.StatusUnauthorized},
		{"own decks need auth", http.MethodGet, "/api/v1/decks/", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCorsConfig(t *testing.T) {
	previous := config.CorsOrigins
	t.Cleanup(func() { config.CorsOrigins = previous })

	config.CorsOrigins = ""
	cfg := corsConfig()
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	config.CorsOrigins = "http://localhost:3000,https://decks.example.com"
	cfg = corsConfig()
	assert.False(t, cfg.AllowAllOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, []string{"http://localhost:3000", "https://decks.example.com"}, cfg.AllowOrigins)
}
