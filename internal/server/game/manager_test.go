package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"shogichess/internal/hybrid"
)

var testSetup = hybrid.Setup{
	Board: hybrid.ChessBoard,
	Black: hybrid.TeamSetup{PlayerID: "b", Layout: "narrowShogi", Placeable: true},
	White: hybrid.TeamSetup{PlayerID: "w", Layout: "chess", Placeable: true},
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func stores(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t, time.Hour)
	return map[string]Store{"memory": NewMemoryStore(), "redis": rs}
}

// playFirst performs the first legal action of the side to move.
func playFirst(gs *GameState) error {
	g := gs.Game
	acts := hybrid.NewShadow(g).LegalActions(g.CurrentTeam())
	if len(acts) == 0 {
		return hybrid.ErrNoLegalMoves
	}
	req, err := g.RequestFor(acts[0])
	if err != nil {
		return err
	}
	_, err = g.Perform(req)
	return err
}

func TestManagerRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, zerolog.Nop())
			gs, err := m.NewGame(ctx, testSetup)
			if err != nil {
				t.Fatalf("NewGame: %v", err)
			}
			updated, err := m.Update(ctx, gs.ID, playFirst)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}

			got, err := m.Get(ctx, gs.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Game.Step() != 2 {
				t.Fatalf("step got=%d want=2", got.Game.Step())
			}
			if diff := cmp.Diff(updated.Game.Snapshot(), got.Game.Snapshot()); diff != "" {
				t.Fatalf("stored game mismatch (-want +got):\n%s", diff)
			}
			if got.Game.Hash() != updated.Game.Hash() {
				t.Fatalf("hash got=%x want=%x", got.Game.Hash(), updated.Game.Hash())
			}
		})
	}
}

func TestManagerFailedUpdateKeepsGame(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, zerolog.Nop())
			gs, err := m.NewGame(ctx, testSetup)
			if err != nil {
				t.Fatalf("NewGame: %v", err)
			}
			boom := errors.New("boom")
			_, err = m.Update(ctx, gs.ID, func(gs *GameState) error {
				if err := playFirst(gs); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("Update err got=%v want=%v", err, boom)
			}
			got, err := m.Get(ctx, gs.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Game.Step() != 1 {
				t.Fatalf("step got=%d want=1", got.Game.Step())
			}
		})
	}
}

func TestManagerNotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			m := NewManager(store, zerolog.Nop())
			if _, err := m.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get err got=%v want=%v", err, ErrNotFound)
			}
			_, err := m.Update(context.Background(), "missing", func(*GameState) error { return nil })
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Update err got=%v want=%v", err, ErrNotFound)
			}
		})
	}
}

func TestManagerSerializesUpdates(t *testing.T) {
	const n = 16
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, zerolog.Nop())
			gs, err := m.NewGame(ctx, testSetup)
			if err != nil {
				t.Fatalf("NewGame: %v", err)
			}
			var eg errgroup.Group
			for i := 0; i < n; i++ {
				eg.Go(func() error {
					_, err := m.Update(ctx, gs.ID, playFirst)
					return err
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatalf("Update: %v", err)
			}
			got, err := m.Get(ctx, gs.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Game.Step() != n+1 {
				t.Fatalf("step got=%d want=%d", got.Game.Step(), n+1)
			}
			if len(m.locks) != 0 {
				t.Fatalf("locks left behind: %d", len(m.locks))
			}
		})
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	m := NewManager(store, zerolog.Nop())
	gs, err := m.NewGame(ctx, testSetup)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if !mr.Exists("game:" + gs.ID) {
		t.Fatalf("key game:%s missing", gs.ID)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := m.Get(ctx, gs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after expiry err got=%v want=%v", err, ErrNotFound)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, zerolog.Nop())
	gs, err := m.NewGame(ctx, testSetup)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	loaded, err := m.Get(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := playFirst(loaded); err != nil {
		t.Fatalf("play: %v", err)
	}
	again, err := m.Get(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Game.Step() != 1 {
		t.Fatalf("unsaved change leaked: step=%d", again.Game.Step())
	}
}
