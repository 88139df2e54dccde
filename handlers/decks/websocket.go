package decks

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deckbuilder/composer"
	"deckbuilder/config"
	"deckbuilder/logger"
	"deckbuilder/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const snapshotWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: checkOrigin,
}

// checkOrigin accepts clients without an Origin header and the configured CORS origins
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range config.AllowedOrigins() {
		if allowed == "*" || strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return true
		}
	}
	return false
}

// DeckWebSocket streams composition updates of a deck. The current state is sent first.
// @Summary Deck updates websocket
// @Tags Decks
// @Param id path string true "Deck ID"
// @Success 101 {object} realtime.DeckUpdate
// @Failure 404 {object} map[string]string
// @Router /decks/{id}/ws [get]
func (h *Handler) DeckWebSocket(c *gin.Context) {
	deck, ok := h.visibleDeck(c)
	if !ok {
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	conn := realtime.Synchronized(ws)
	defer conn.Close()

	if err := h.subscribe(c.Request.Context(), deck.ID, conn); err != nil {
		logger.L().Debug("websocket subscription failed", zap.String("deck_id", deck.ID), zap.Error(err))
		return
	}
	defer realtime.UnregisterClient(deck.ID, conn)

	// Clients only listen; reading detects the close
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

// subscribe registers conn before reading the snapshot so no update applied in
// between is lost. Updates older than the snapshot version may still follow it.
func (h *Handler) subscribe(ctx context.Context, deckID string, conn realtime.Client) error {
	realtime.RegisterClient(deckID, conn)

	snap, err := h.sessions.View(ctx, deckID, func(*composer.Composer) {})
	if err != nil {
		realtime.UnregisterClient(deckID, conn)
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(snapshotWriteTimeout))
	err = conn.WriteJSON(realtime.DeckUpdate{
		DeckID:     deckID,
		UpdateType: "snapshot",
		Version:    snap.Version,
		Spells:     snap.Spells,
	})
	if err != nil {
		realtime.UnregisterClient(deckID, conn)
	}
	return err
}
