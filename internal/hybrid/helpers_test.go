package hybrid

import (
	"math/rand/v2"
	"testing"
)

func mustDiagram(t *testing.T, s string) *Game {
	t.Helper()
	g, err := ParseDiagram(s)
	if err != nil {
		t.Fatalf("parse diagram %q: %v", s, err)
	}
	return g
}

func mustGame(t *testing.T, board BoardType, black, white string) *Game {
	t.Helper()
	g, err := NewGame(Setup{
		Board: board,
		Black: TeamSetup{PlayerID: "b", Layout: black, Placeable: true},
		White: TeamSetup{PlayerID: "w", Layout: white, Placeable: true},
	})
	if err != nil {
		t.Fatalf("new game %s %s/%s: %v", board, black, white, err)
	}
	return g
}

// shadowState is a comparable dump of everything a shadow can change.
type shadowState struct {
	Board []BoardEntry
	White []Piece
	Black []Piece
	Last  *LastMove
	Hash  uint64
}

func dumpShadow(s *Shadow) shadowState {
	st := shadowState{Last: s.LastMove().clone(), Hash: s.Hash()}
	s.Board().Each(func(at Position, pc *Piece) {
		st.Board = append(st.Board, BoardEntry{At: at, Piece: *pc.Clone()})
	})
	for _, pc := range s.Pool(White).Pieces() {
		st.White = append(st.White, *pc.Clone())
	}
	for _, pc := range s.Pool(Black).Pieces() {
		st.Black = append(st.Black, *pc.Clone())
	}
	return st
}

func containsAction(list []Action, a Action) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

var playoutSetups = []struct {
	name         string
	board        BoardType
	black, white string
}{
	{"shogi", ShogiBoard, "shogi", "shogi"},
	{"wideChess-vs-shogi", ShogiBoard, "wideChess", "shogi"},
	{"replaceShogi-vs-wideChess", ShogiBoard, "replaceShogi", "wideChess"},
	{"chess", ChessBoard, "chess", "chess"},
	{"narrowShogi-vs-chess", ChessBoard, "narrowShogi", "chess"},
	{"replaceChess-vs-narrowShogi", ChessBoard, "replaceChess", "narrowShogi"},
}

// playout applies up to plies random legal actions to the shadow, calling
// visit after each one, and returns how many were applied.
func playout(t *testing.T, s *Shadow, first Team, plies int, rng *rand.Rand, visit func(team Team, a Action)) int {
	t.Helper()
	team := first
	for ply := 0; ply < plies; ply++ {
		acts := s.LegalActions(team)
		if len(acts) == 0 {
			return ply
		}
		a := acts[rng.IntN(len(acts))]
		if err := s.Apply(a); err != nil {
			t.Fatalf("apply %v at ply %d: %v", a, ply, err)
		}
		if visit != nil {
			visit(team, a)
		}
		team = team.Opponent()
	}
	return plies
}
