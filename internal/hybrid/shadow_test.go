package hybrid

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUndoRestoresState(t *testing.T) {
	for _, tc := range playoutSetups {
		t.Run(tc.name, func(t *testing.T) {
			s := NewShadow(mustGame(t, tc.board, tc.black, tc.white))
			rng := rand.New(rand.NewPCG(3, uint64(len(tc.name))))

			var states []shadowState
			states = append(states, dumpShadow(s))
			n := playout(t, s, White, 80, rng, func(Team, Action) {
				states = append(states, dumpShadow(s))
			})
			if s.Depth() != n {
				t.Fatalf("depth: got=%d want=%d", s.Depth(), n)
			}
			for i := n; i > 0; i-- {
				if err := s.Undo(); err != nil {
					t.Fatalf("undo at %d: %v", i, err)
				}
				if diff := cmp.Diff(states[i-1], dumpShadow(s)); diff != "" {
					t.Fatalf("state after undo to ply %d mismatch (-want +got):\n%s", i-1, diff)
				}
			}
			if err := s.Undo(); !errors.Is(err, ErrEmptyHistory) {
				t.Fatalf("undo on empty history: got=%v want=%v", err, ErrEmptyHistory)
			}
		})
	}
}

func TestLegalActionsNeverLeaveKingInCheck(t *testing.T) {
	for _, tc := range playoutSetups {
		t.Run(tc.name, func(t *testing.T) {
			s := NewShadow(mustGame(t, tc.board, tc.black, tc.white))
			rng := rand.New(rand.NewPCG(5, uint64(len(tc.name))))
			team := White
			for ply := 0; ply < 40; ply++ {
				acts := s.LegalActions(team)
				for _, a := range acts {
					if err := s.Apply(a); err != nil {
						t.Fatalf("ply %d: legal action %v rejected: %v", ply, a, err)
					}
					if s.InCheck(team) {
						t.Fatalf("ply %d: %v leaves %v in check", ply, a, team)
					}
					if err := s.Undo(); err != nil {
						t.Fatalf("undo: %v", err)
					}
				}
				if len(acts) == 0 {
					return
				}
				if err := s.Apply(acts[rng.IntN(len(acts))]); err != nil {
					t.Fatalf("apply: %v", err)
				}
				team = team.Opponent()
			}
		})
	}
}

func TestShadowIsIndependentOfGame(t *testing.T) {
	g := mustGame(t, ChessBoard, "chess", "chess")
	before := g.Snapshot()
	s := NewShadow(g)
	if err := s.Move(White, Position{4, 6}, Position{4, 4}, false); err != nil {
		t.Fatalf("move: %v", err)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Fatalf("game changed by shadow move (-want +got):\n%s", diff)
	}
}

func TestShadowRejectsWithoutMutation(t *testing.T) {
	s := NewShadow(mustGame(t, ShogiBoard, "shogi", "shogi"))
	before := dumpShadow(s)

	tests := []struct {
		name string
		do   func() error
		want error
	}{
		{"empty origin", func() error { return s.Move(White, Position{4, 4}, Position{4, 3}, false) }, ErrInvalidPieceReference},
		{"wrong team", func() error { return s.Move(White, Position{4, 0}, Position{4, 1}, false) }, ErrInvalidPieceReference},
		{"onto own piece", func() error { return s.Move(White, Position{4, 8}, Position{3, 8}, false) }, ErrIllegalAction},
		{"nothing to drop", func() error { return s.Place(White, ShogiPawn, Position{4, 4}) }, ErrInvalidPieceReference},
	}
	for _, tc := range tests {
		if err := tc.do(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got=%v want=%v", tc.name, err, tc.want)
		}
		if diff := cmp.Diff(before, dumpShadow(s)); diff != "" {
			t.Fatalf("%s mutated the shadow (-want +got):\n%s", tc.name, diff)
		}
	}
}
