package realtime

import (
	"context"
	"sync"
	"time"

	"deckbuilder/autosave"
	"deckbuilder/logger"
	"deckbuilder/metrics"
	"deckbuilder/models"

	"go.uber.org/zap"
)

const (
	broadcastBuffer = 256
	writeTimeout    = 5 * time.Second
)

// Client is the part of a websocket connection the hub writes to
type Client interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

var (
	deckClients = make(map[string]map[Client]bool) // Map of deck ID to connected clients
	broadcast   = make(chan DeckUpdate, broadcastBuffer)
	mutex       sync.Mutex // Mutex to protect deckClients map
)

// DeckUpdate is pushed to every open view of a deck
type DeckUpdate struct {
	DeckID     string            `json:"deck_id"`
	UpdateType string            `json:"update_type"` // "update", "saved" or "save_failed"
	Operation  string            `json:"operation,omitempty"`
	Version    uint64            `json:"version"`
	Spells     []models.SpellRef `json:"spells,omitempty"`
}

// lockedClient serializes the writes of the delivery loop and of the request handler
type lockedClient struct {
	mu   sync.Mutex
	conn Client
}

// Synchronized wraps conn so it can be written from several goroutines
func Synchronized(conn Client) Client {
	return &lockedClient{conn: conn}
}

func (c *lockedClient) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *lockedClient) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.SetWriteDeadline(t)
}

func (c *lockedClient) Close() error {
	return c.conn.Close()
}

// RegisterClient adds a WebSocket client to a specific deck
func RegisterClient(deckID string, conn Client) {
	mutex.Lock()
	if deckClients[deckID] == nil {
		deckClients[deckID] = make(map[Client]bool)
	}
	deckClients[deckID][conn] = true
	mutex.Unlock()
	metrics.WebsocketClients.Inc()
}

// UnregisterClient removes a WebSocket client from a specific deck
func UnregisterClient(deckID string, conn Client) {
	mutex.Lock()
	defer mutex.Unlock()
	removeLocked(deckID, conn)
}

func removeLocked(deckID string, conn Client) {
	clients, exists := deckClients[deckID]
	if !exists || !clients[conn] {
		return
	}
	delete(clients, conn)
	if len(clients) == 0 {
		delete(deckClients, deckID)
	}
	metrics.WebsocketClients.Dec()
}

// ClientCount returns the number of open views of a deck
func ClientCount(deckID string) int {
	mutex.Lock()
	defer mutex.Unlock()
	return len(deckClients[deckID])
}

// BroadcastDeckUpdate queues an update. It never blocks: when the queue is full the
// update is dropped, the next one carries the full spell sequence anyway.
func BroadcastDeckUpdate(update DeckUpdate) {
	select {
	case broadcast <- update:
	default:
		logger.L().Warn("realtime queue full, dropping deck update",
			zap.String("deck_id", update.DeckID), zap.Uint64("version", update.Version))
	}
}

// AutosaveListener forwards autosave events to the deck's viewers
func AutosaveListener(e autosave.Event) {
	update := DeckUpdate{
		DeckID:     e.DeckID,
		UpdateType: string(e.Type),
		Operation:  e.Operation,
		Version:    e.Version,
	}
	if e.Type == autosave.EventUpdated {
		update.Spells = e.Spells
	}
	BroadcastDeckUpdate(update)
}

// Run delivers queued updates until ctx is done
func Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-broadcast:
			deliver(update)
		}
	}
}

func deliver(update DeckUpdate) {
	mutex.Lock()
	defer mutex.Unlock()
	for client := range deckClients[update.DeckID] {
		_ = client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.WriteJSON(update); err != nil {
			logger.L().Debug("websocket write error", zap.String("deck_id", update.DeckID), zap.Error(err))
			client.Close()
			removeLocked(update.DeckID, client)
		}
	}
}
