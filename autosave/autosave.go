// Package autosave keeps one composition session per open deck and writes the
// spell sequence back to the store once edits have been quiet for a while.
//
// There is no conflict detection and no retry: a failed save leaves the session
// dirty so the next edit or an explicit flush writes it again. Last write wins.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"deckbuilder/composer"
	"deckbuilder/config"
	"deckbuilder/logger"
	"deckbuilder/metrics"
	"deckbuilder/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("autosave manager is closed")

// errSessionClosed is returned by a session evicted between lookup and use
var errSessionClosed = errors.New("session closed")

const (
	triggerDebounce = "debounce"
	triggerFlush    = "flush"
	flushParallel   = 8
)

// Store loads and persists deck spell sequences
type Store interface {
	LoadDeckSpells(ctx context.Context, deckID string) ([]models.SpellRef, error)
	SaveDeckSpells(ctx context.Context, deckID string, spells []models.SpellRef) error
}

// EventType tells listeners what happened to a session
type EventType string

const (
	EventUpdated    EventType = "update"
	EventSaved      EventType = "saved"
	EventSaveFailed EventType = "save_failed"
)

// Event is emitted after every applied operation and every save attempt
type Event struct {
	DeckID    string
	Type      EventType
	Operation string
	Version   uint64
	Spells    []models.SpellRef
}

// Options tunes a Manager. Zero values fall back to the configured defaults.
type Options struct {
	Delay       time.Duration
	SaveTimeout time.Duration
	Listener    func(Event)
}

// Snapshot is the state of a session right after an operation
type Snapshot struct {
	DeckID  string            `json:"deck_id"`
	Version uint64            `json:"version"`
	Dirty   bool              `json:"dirty"`
	Spells  []models.SpellRef `json:"spells"`
}

// Manager owns the composition sessions of every open deck
type Manager struct {
	store       Store
	delay       time.Duration
	saveTimeout time.Duration
	listener    func(Event)

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

// NewManager creates a manager saving through store
func NewManager(store Store, opts Options) *Manager {
	if opts.Delay <= 0 {
		opts.Delay = config.DefaultAutosaveDelay
	}
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = config.SaveTimeout
	}
	return &Manager{
		store:       store,
		delay:       opts.Delay,
		saveTimeout: opts.SaveTimeout,
		listener:    opts.Listener,
		sessions:    make(map[string]*session),
	}
}

// Apply runs op against the deck's composer and restarts the save timer.
// When op fails nothing is scheduled and the error is returned unchanged.
func (m *Manager) Apply(ctx context.Context, deckID, operation string, op func(c *composer.Composer) error) (Snapshot, error) {
	for {
		s, err := m.session(ctx, deckID)
		if err != nil {
			return Snapshot{}, err
		}
		snap, event, err := s.apply(op, operation)
		if errors.Is(err, errSessionClosed) {
			continue
		}
		if err != nil {
			return Snapshot{}, err
		}
		metrics.CompositionOperations.WithLabelValues(operation).Inc()
		m.emit(event)
		return snap, nil
	}
}

// View runs fn against the current composition without modifying it. Decks
// without an open session are read from the store.
func (m *Manager) View(ctx context.Context, deckID string, fn func(c *composer.Composer)) (Snapshot, error) {
	m.mu.Lock()
	s, ok := m.sessions[deckID]
	m.mu.Unlock()

	if ok {
		s.mu.Lock()
		if !s.closed {
			fn(s.composer)
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		s.mu.Unlock()
	}

	spells, err := m.store.LoadDeckSpells(ctx, deckID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load deck %s: %w", deckID, err)
	}
	c := composer.New(spells)
	fn(c)
	return Snapshot{DeckID: deckID, Spells: c.Spells()}, nil
}

// Flush saves the deck right away if it has unsaved changes
func (m *Manager) Flush(ctx context.Context, deckID string) error {
	m.mu.Lock()
	s, ok := m.sessions[deckID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	event, err := s.saveLocked(ctx, triggerFlush)
	s.mu.Unlock()
	m.emit(event)
	return err
}

// FlushAll saves every dirty session concurrently. Every session is attempted; the
// failures are joined into the returned error.
func (m *Manager) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	// a failed deck must not cancel the saves of the others
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(flushParallel)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := m.Flush(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("flush %s: %w", id, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Evict drops the session of a deck, discarding unsaved changes
func (m *Manager) Evict(deckID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[deckID]
	if !ok {
		return
	}
	delete(m.sessions, deckID)
	metrics.AutosaveSessions.Set(float64(len(m.sessions)))

	s.mu.Lock()
	s.close()
	s.mu.Unlock()
}

// Close flushes every session and refuses new operations
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	err := m.FlushAll(ctx)

	m.mu.Lock()
	for id, s := range m.sessions {
		s.mu.Lock()
		s.close()
		s.mu.Unlock()
		delete(m.sessions, id)
	}
	metrics.AutosaveSessions.Set(0)
	m.mu.Unlock()
	return err
}

// Sessions returns the number of sessions held in memory
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// session returns the open session of a deck, loading it from the store if needed
func (m *Manager) session(ctx context.Context, deckID string) (*session, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if s, ok := m.sessions[deckID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	spells, err := m.store.LoadDeckSpells(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", deckID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	// another request may have opened the deck while we were loading
	if s, ok := m.sessions[deckID]; ok {
		return s, nil
	}
	s := &session{m: m, deckID: deckID, composer: composer.New(spells)}
	m.sessions[deckID] = s
	metrics.AutosaveSessions.Set(float64(len(m.sessions)))
	return s, nil
}

// evictIfClean drops a session whose last save succeeded and that has no pending edit
func (m *Manager) evictIfClean(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.dirty() || s.timer != nil {
		return
	}
	if m.sessions[s.deckID] == s {
		delete(m.sessions, s.deckID)
		metrics.AutosaveSessions.Set(float64(len(m.sessions)))
	}
	s.close()
}

func (m *Manager) emit(e Event) {
	if m.listener == nil || e.Type == "" {
		return
	}
	m.listener(e)
}

// session is the composition state of one deck
type session struct {
	m        *Manager
	deckID   string
	mu       sync.Mutex
	composer *composer.Composer
	version  uint64
	saved    uint64
	timer    *time.Timer
	closed   bool
}

func (s *session) apply(op func(c *composer.Composer) error, operation string) (Snapshot, Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Snapshot{}, Event{}, errSessionClosed
	}
	if err := op(s.composer); err != nil {
		return Snapshot{}, Event{}, err
	}
	s.version++
	s.schedule()

	snap := s.snapshotLocked()
	return snap, Event{
		DeckID:    s.deckID,
		Type:      EventUpdated,
		Operation: operation,
		Version:   snap.Version,
		Spells:    snap.Spells,
	}, nil
}

// schedule restarts the debounce timer; a timer that already fired for an older
// version sees the version mismatch and does nothing.
func (s *session) schedule() {
	if s.timer != nil {
		s.timer.Stop()
	}
	version := s.version
	s.timer = time.AfterFunc(s.m.delay, func() { s.fire(version) })
}

func (s *session) fire(version uint64) {
	s.mu.Lock()
	if s.closed || s.version != version {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ctx, cancel := context.WithTimeout(context.Background(), s.m.saveTimeout)
	event, err := s.saveLocked(ctx, triggerDebounce)
	cancel()
	s.mu.Unlock()

	s.m.emit(event)
	if err == nil {
		s.m.evictIfClean(s)
	}
}

// saveLocked writes the sequence if it changed since the last successful save
func (s *session) saveLocked(ctx context.Context, trigger string) (Event, error) {
	if !s.dirty() {
		return Event{}, nil
	}
	spells := s.composer.Spells()
	version := s.version

	if err := s.m.store.SaveDeckSpells(ctx, s.deckID, spells); err != nil {
		metrics.AutosaveSaves.WithLabelValues(trigger, "error").Inc()
		logger.L().Error("deck autosave failed",
			zap.String("deck_id", s.deckID),
			zap.String("trigger", trigger),
			zap.Uint64("version", version),
			zap.Error(err))
		return Event{DeckID: s.deckID, Type: EventSaveFailed, Version: version}, err
	}

	s.saved = version
	metrics.AutosaveSaves.WithLabelValues(trigger, "ok").Inc()
	logger.L().Debug("deck saved",
		zap.String("deck_id", s.deckID),
		zap.String("trigger", trigger),
		zap.Int("spells", len(spells)))
	return Event{DeckID: s.deckID, Type: EventSaved, Version: version, Spells: spells}, nil
}

func (s *session) dirty() bool {
	return s.version != s.saved
}

func (s *session) snapshotLocked() Snapshot {
	return Snapshot{
		DeckID:  s.deckID,
		Version: s.version,
		Dirty:   s.dirty(),
		Spells:  s.composer.Spells(),
	}
}

func (s *session) close() {
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
