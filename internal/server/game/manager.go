package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shogichess/internal/hybrid"
)

// Manager hands out game ids and serializes read-modify-write cycles per
// game. Different games proceed in parallel.
type Manager struct {
	store Store
	log   zerolog.Logger

	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log, locks: make(map[string]*gameLock)}
}

func (m *Manager) NewGame(ctx context.Context, setup hybrid.Setup) (*GameState, error) {
	g, err := hybrid.NewGame(setup)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	gs := &GameState{
		ID:        uuid.NewString(),
		Game:      g,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, gs); err != nil {
		return nil, err
	}
	m.log.Info().Str("game_id", gs.ID).
		Str("board", string(setup.Board)).
		Str("black", setup.Black.Layout).
		Str("white", setup.White.Layout).
		Msg("game created")
	return gs, nil
}

// Get returns a private copy of the stored game.
func (m *Manager) Get(ctx context.Context, id string) (*GameState, error) {
	return m.store.Load(ctx, id)
}

// Update loads the game, runs fn and saves the result, holding the game's
// lock throughout. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, id string, fn func(gs *GameState) error) (*GameState, error) {
	unlock := m.lock(id)
	defer unlock()

	gs, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(gs); err != nil {
		return nil, err
	}
	gs.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, gs); err != nil {
		return nil, err
	}
	return gs, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &gameLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
