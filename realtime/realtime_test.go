package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"deckbuilder/autosave"
	"deckbuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClient struct {
	mu      sync.Mutex
	updates []DeckUpdate
	fail    bool
	closed  bool
}

func (c *fakeClient) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.updates = append(c.updates, v.(DeckUpdate))
	return nil
}

func (c *fakeClient) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() []DeckUpdate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DeckUpdate(nil), c.updates...)
}

func TestBroadcastReachesOnlyTheDeckViewers(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	viewer, other, broken := &fakeClient{}, &fakeClient{}, &fakeClient{fail: true}
	RegisterClient("deck-1", viewer)
	RegisterClient("deck-1", broken)
	RegisterClient("deck-2", other)
	defer UnregisterClient("deck-1", viewer)
	defer UnregisterClient("deck-2", other)
	require.Equal(t, 2, ClientCount("deck-1"))

	AutosaveListener(autosave.Event{
		DeckID:    "deck-1",
		Type:      autosave.EventUpdated,
		Operation: "add",
		Version:   3,
		Spells:    []models.SpellRef{{Name: "Fire Cat", School: models.SchoolFire, PipCost: "1"}},
	})
	AutosaveListener(autosave.Event{DeckID: "deck-1", Type: autosave.EventSaved, Version: 3})

	require.Eventually(t, func() bool { return len(viewer.received()) == 2 }, time.Second, 5*time.Millisecond)

	got := viewer.received()
	assert.Equal(t, "update", got[0].UpdateType)
	assert.Len(t, got[0].Spells, 1)
	assert.Equal(t, "saved", got[1].UpdateType)
	assert.Nil(t, got[1].Spells)

	assert.Empty(t, other.received())
	assert.True(t, broken.closed)
	assert.Equal(t, 1, ClientCount("deck-1"))
}

func TestUnregisterRemovesEmptyDecks(t *testing.T) {
	c := &fakeClient{}
	RegisterClient("deck-3", c)
	UnregisterClient("deck-3", c)
	UnregisterClient("deck-3", c)
	assert.Equal(t, 0, ClientCount("deck-3"))
}

type overlapClient struct {
	writing  atomic.Bool
	overlaps atomic.Int32
	writes   atomic.Int32
}

func (c *overlapClient) WriteJSON(interface{}) error {
	if !c.writing.CompareAndSwap(false, true) {
		c.overlaps.Add(1)
	}
	time.Sleep(100 * time.Microsecond)
	c.writing.Store(false)
	c.writes.Add(1)
	return nil
}

func (c *overlapClient) SetWriteDeadline(time.Time) error { return nil }
func (c *overlapClient) Close() error { return nil }

func TestSynchronizedSerializesWrites(t *testing.T) {
	raw := &overlapClient{}
	conn := Synchronized(raw)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = conn.WriteJSON(DeckUpdate{DeckID: "deck-1"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(80), raw.writes.Load())
	assert.Zero(t, raw.overlaps.Load())
}
