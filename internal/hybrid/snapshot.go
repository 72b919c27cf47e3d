package hybrid

import (
	"encoding/json"
	"fmt"
)

type BoardEntry struct {
	At    Position `json:"at"`
	Piece Piece    `json:"piece"`
}

type PlayerSnapshot struct {
	ID       string  `json:"id"`
	Captured []Piece `json:"captured"`
}

// Snapshot is the serializable form of a Game. Restoring it reproduces the
// game exactly, including repetition counts.
type Snapshot struct {
	Setup      Setup          `json:"setup"`
	Size       int            `json:"size"`
	Step       int            `json:"step"`
	LastMove   *LastMove      `json:"last_move,omitempty"`
	Board      []BoardEntry   `json:"board"`
	White      PlayerSnapshot `json:"white"`
	Black      PlayerSnapshot `json:"black"`
	Repetition map[uint64]int `json:"repetition,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Setup:    g.setup,
		Size:     g.board.Size,
		Step:     g.step,
		LastMove: g.lastMove.clone(),
		White:    playerSnapshot(g.white),
		Black:    playerSnapshot(g.black),
	}
	g.board.Each(func(at Position, pc *Piece) {
		s.Board = append(s.Board, BoardEntry{At: at, Piece: *pc.Clone()})
	})
	if len(g.repetition) > 0 {
		s.Repetition = make(map[uint64]int, len(g.repetition))
		for h, n := range g.repetition {
			s.Repetition[h] = n
		}
	}
	return s
}

func playerSnapshot(p *Player) PlayerSnapshot {
	ps := PlayerSnapshot{ID: p.ID, Captured: []Piece{}}
	for _, pc := range p.Captured.pieces {
		ps.Captured = append(ps.Captured, *pc.Clone())
	}
	return ps
}

// FromSnapshot rebuilds a game, rejecting snapshots that break board or id
// invariants.
func FromSnapshot(s Snapshot) (*Game, error) {
	if s.Size != ShogiSize && s.Size != ChessSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidSnapshot, s.Size)
	}
	if s.Step < 1 {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidSnapshot, s.Step)
	}
	seen := make(map[PieceID]bool)
	check := func(pc *Piece) error {
		if !pc.Kind.Valid() || (pc.Team != White && pc.Team != Black) {
			return fmt.Errorf("%w: piece %s", ErrInvalidSnapshot, pc.ID)
		}
		if seen[pc.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidSnapshot, pc.ID)
		}
		seen[pc.ID] = true
		return nil
	}

	b := NewBoard(s.Size)
	for _, e := range s.Board {
		pc := e.Piece.Clone()
		if err := check(pc); err != nil {
			return nil, err
		}
		if err := b.Place(pc, e.At); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	g := newGame(s.Setup, b)
	g.setup.Board = boardTypeOf(s.Size)
	g.white.ID, g.black.ID = s.White.ID, s.Black.ID
	for team, ps := range [2]PlayerSnapshot{White: s.White, Black: s.Black} {
		for i := range ps.Captured {
			pc := ps.Captured[i].Clone()
			if err := check(pc); err != nil {
				return nil, err
			}
			if pc.Team != Team(team) {
				return nil, fmt.Errorf("%w: pooled piece %s on wrong team", ErrInvalidSnapshot, pc.ID)
			}
			g.Pool(Team(team)).Add(pc)
		}
	}
	g.step = s.Step
	g.lastMove = s.LastMove.clone()
	for h, n := range s.Repetition {
		g.repetition[h] = n
	}
	return g, nil
}

func (g *Game) MarshalJSON() ([]byte, error) { return json.Marshal(g.Snapshot()) }

func (g *Game) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	restored, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*g = *restored
	return nil
}
