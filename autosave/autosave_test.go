package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"deckbuilder/composer"
	"deckbuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDelay = 20 * time.Millisecond

type fakeStore struct {
	mu       sync.Mutex
	decks    map[string][]models.SpellRef
	saves    int
	loads    int
	failures int
	failNext bool
	failDeck string
}

func newFakeStore() *fakeStore {
	return &fakeStore{decks: map[string][]models.SpellRef{"deck-1": nil, "deck-2": nil}}
}

func (f *fakeStore) LoadDeckSpells(_ context.Context, deckID string) ([]models.SpellRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spells, ok := f.decks[deckID]
	if !ok {
		return nil, errors.New("deck not found")
	}
	f.loads++
	return append([]models.SpellRef(nil), spells...), nil
}

func (f *fakeStore) SaveDeckSpells(_ context.Context, deckID string, spells []models.SpellRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext || deckID == f.failDeck {
		f.failNext = false
		f.failures++
		return errors.New("database unavailable")
	}
	f.saves++
	f.decks[deckID] = append([]models.SpellRef(nil), spells...)
	return nil
}

func (f *fakeStore) stats() (saves, loads, failures int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves, f.loads, f.failures
}

func (f *fakeStore) stored(deckID string) []models.SpellRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decks[deckID]
}

func addOne(name string) func(c *composer.Composer) error {
	return func(c *composer.Composer) error {
		_, err := c.AddSpell(models.SpellRef{Name: name, School: models.SchoolFire, PipCost: "1"}, 1)
		return err
	}
}

func newTestManager(t *testing.T, store Store, listener func(Event)) *Manager {
	t.Helper()
	m := NewManager(store, Options{Delay: testDelay, SaveTimeout: time.Second, Listener: listener})
	t.Cleanup(func() {
		_ = m.Close(context.Background())
	})
	return m
}

func TestMutationsWithinDelayProduceOneSave(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := newTestManager(t, store, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		snap, err := m.Apply(ctx, "deck-1", "add", addOne(fmt.Sprintf("spell-%d", i)))
		require.NoError(t, err)
		assert.True(t, snap.Dirty)
		assert.Equal(t, uint64(i+1), snap.Version)
	}

	assert.Eventually(t, func() bool {
		saves, _, _ := store.stats()
		return saves == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(3 * testDelay)
	saves, loads, _ := store.stats()
	assert.Equal(t, 1, saves)
	assert.Equal(t, 1, loads)
	assert.Len(t, store.stored("deck-1"), 5)
}

func TestFlushSavesImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := NewManager(store, Options{Delay: time.Hour})
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Cat"))
	require.NoError(t, err)
	require.NoError(t, m.Flush(ctx, "deck-1"))

	saves, _, _ := store.stats()
	assert.Equal(t, 1, saves)

	// nothing left to write
	require.NoError(t, m.Flush(ctx, "deck-1"))
	saves, _, _ = store.stats()
	assert.Equal(t, 1, saves)
	require.NoError(t, m.Close(ctx))
}

func TestFailedSaveKeepsSessionDirty(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	store.failNext = true

	var mu sync.Mutex
	var events []EventType
	m := newTestManager(t, store, func(e Event) {
		mu.Lock()
		events = append(events, e.Type)
		mu.Unlock()
	})
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Cat"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, _, failures := store.stats()
		return failures == 1
	}, time.Second, 5*time.Millisecond)

	snap, err := m.View(ctx, "deck-1", func(*composer.Composer) {})
	require.NoError(t, err)
	assert.True(t, snap.Dirty)
	assert.Equal(t, 1, m.Sessions())

	require.NoError(t, m.Flush(ctx, "deck-1"))
	assert.Len(t, store.stored("deck-1"), 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{EventUpdated, EventSaveFailed, EventSaved}, events)
}

func TestFlushAllSavesHealthyDecksWhenOneFails(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	store.failDeck = "bad"
	store.decks["bad"] = nil
	for i := 0; i < 30; i++ {
		store.decks[fmt.Sprintf("deck-%02d", i)] = nil
	}
	m := NewManager(store, Options{Delay: time.Hour})
	ctx := context.Background()

	for id := range store.decks {
		_, err := m.Apply(ctx, id, "add", addOne("Fire Cat"))
		require.NoError(t, err)
	}

	err := m.FlushAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")

	for i := 0; i < 30; i++ {
		assert.Len(t, store.stored(fmt.Sprintf("deck-%02d", i)), 1)
	}
	assert.Empty(t, store.stored("bad"))

	// the failed deck is still dirty and stays in memory
	snap, err := m.View(ctx, "bad", func(*composer.Composer) {})
	require.NoError(t, err)
	assert.True(t, snap.Dirty)

	store.mu.Lock()
	store.failDeck = ""
	store.mu.Unlock()
	require.NoError(t, m.Close(ctx))
	assert.Len(t, store.stored("bad"), 1)
}

func TestCleanSessionIsEvictedAndReloaded(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := newTestManager(t, store, nil)
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Cat"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return m.Sessions() == 0 }, time.Second, 5*time.Millisecond)

	snap, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Elf"))
	require.NoError(t, err)
	assert.Len(t, snap.Spells, 2)

	_, loads, _ := store.stats()
	assert.Equal(t, 2, loads)
}

func TestFailedOperationSchedulesNothing(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := newTestManager(t, store, nil)
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "remove", func(c *composer.Composer) error {
		return c.RemoveSpell(3)
	})
	assert.ErrorIs(t, err, composer.ErrSlotOutOfRange)

	time.Sleep(3 * testDelay)
	saves, _, _ := store.stats()
	assert.Zero(t, saves)
}

func TestEvictDiscardsPendingChanges(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := newTestManager(t, store, nil)
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Cat"))
	require.NoError(t, err)
	m.Evict("deck-1")

	time.Sleep(3 * testDelay)
	saves, _, _ := store.stats()
	assert.Zero(t, saves)
	assert.Zero(t, m.Sessions())
}

func TestCloseFlushesAndRejectsNewOperations(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := NewManager(store, Options{Delay: time.Hour})
	ctx := context.Background()

	_, err := m.Apply(ctx, "deck-1", "add", addOne("Fire Cat"))
	require.NoError(t, err)
	_, err = m.Apply(ctx, "deck-2", "add", addOne("Frost Beetle"))
	require.NoError(t, err)

	require.NoError(t, m.Close(ctx))
	assert.Len(t, store.stored("deck-1"), 1)
	assert.Len(t, store.stored("deck-2"), 1)

	_, err = m.Apply(ctx, "deck-1", "add", addOne("Fire Elf"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentApplyNeverExceedsCapacity(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	m := NewManager(store, Options{Delay: time.Hour})
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, _ = m.Apply(ctx, "deck-1", "add", addOne(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	require.NoError(t, m.Close(ctx))
	assert.Len(t, store.stored("deck-1"), 64)
}

func TestViewWithoutSessionReadsStore(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := newFakeStore()
	store.decks["deck-1"] = []models.SpellRef{{Name: "Fire Cat", School: models.SchoolFire, PipCost: "1"}}
	m := newTestManager(t, store, nil)

	var total int
	snap, err := m.View(context.Background(), "deck-1", func(c *composer.Composer) {
		total = c.Breakdown().Total
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.False(t, snap.Dirty)
	assert.Zero(t, m.Sessions())

	_, err = m.View(context.Background(), "missing", func(*composer.Composer) {})
	assert.Error(t, err)
}
