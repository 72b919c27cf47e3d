package engine

import (
	"math"
	"testing"

	"shogichess/internal/hybrid"
)

func mustDiagram(t *testing.T, s string) *hybrid.Game {
	t.Helper()
	g, err := hybrid.ParseDiagram(s)
	if err != nil {
		t.Fatalf("parse diagram %q: %v", s, err)
	}
	return g
}

func mustGame(t *testing.T, board hybrid.BoardType, black, white string) *hybrid.Game {
	t.Helper()
	g, err := hybrid.NewGame(hybrid.Setup{
		Board: board,
		Black: hybrid.TeamSetup{PlayerID: "b", Layout: black, Placeable: true},
		White: hybrid.TeamSetup{PlayerID: "w", Layout: white, Placeable: true},
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func TestEvaluateSymmetricStart(t *testing.T) {
	tests := []struct {
		board  hybrid.BoardType
		layout string
	}{
		{hybrid.ShogiBoard, "shogi"},
		{hybrid.ShogiBoard, "wideChess"},
		{hybrid.ShogiBoard, "replaceShogi"},
		{hybrid.ChessBoard, "chess"},
		{hybrid.ChessBoard, "narrowShogi"},
		{hybrid.ChessBoard, "replaceChess"},
	}
	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			g := mustGame(t, tt.board, tt.layout, tt.layout)
			if got := Evaluate(g); math.Abs(got) > 1e-9 {
				t.Fatalf("Evaluate got=%v want=0", got)
			}
		})
	}
}

func TestEvaluateSign(t *testing.T) {
	// lone kings on the centre file score zero
	base := mustDiagram(t, "4k4/9/9/9/9/9/9/9/4K4 w")
	if got := Evaluate(base); math.Abs(got) > 1e-9 {
		t.Fatalf("kings only got=%v want=0", got)
	}

	whiteUp := mustDiagram(t, "4k4/9/9/9/9/9/9/4R4/4K4 w")
	if got := Evaluate(whiteUp); got <= 0 {
		t.Fatalf("extra white rook got=%v want>0", got)
	}

	blackUp := mustDiagram(t, "4k4/4r4/9/9/9/9/9/9/4K4 w")
	if got := Evaluate(blackUp); got >= 0 {
		t.Fatalf("extra black rook got=%v want<0", got)
	}

	pooled := mustDiagram(t, "4k4/9/9/9/9/9/9/9/4K4 w")
	pooled.Pool(hybrid.Black).Add(hybrid.NewPiece(40, hybrid.ShogiGold, hybrid.Black, 3, true))
	pooled.Pool(hybrid.Black).Add(hybrid.NewPiece(41, hybrid.ShogiPawn, hybrid.Black, 3, true))
	if got, want := Evaluate(pooled), -(pieceValue[hybrid.ShogiGold] + pieceValue[hybrid.ShogiPawn]); math.Abs(got-want) > 1e-9 {
		t.Fatalf("black pool got=%v want=%v", got, want)
	}
}

func TestEvaluatePromotedValue(t *testing.T) {
	plain := mustDiagram(t, "4k4/9/9/9/4P4/9/9/9/4K4 w")
	promoted := mustDiagram(t, "4k4/9/9/9/4+P4/9/9/9/4K4 w")
	diff := Evaluate(promoted) - Evaluate(plain)
	want := promotedValue[hybrid.ShogiPawn] - pieceValue[hybrid.ShogiPawn]
	if math.Abs(diff-want) > 1e-9 {
		t.Fatalf("promotion gain got=%v want=%v", diff, want)
	}
}

func TestPositionalBonusAdvance(t *testing.T) {
	// a white pawn gains by moving toward y=0, a black one toward y=8
	back := positionalBonus(hybrid.ShogiPawn, hybrid.White, hybrid.Position{X: 4, Y: 6}, 9)
	ahead := positionalBonus(hybrid.ShogiPawn, hybrid.White, hybrid.Position{X: 4, Y: 3}, 9)
	if ahead <= back {
		t.Fatalf("white advance got=%v want>%v", ahead, back)
	}
	back = positionalBonus(hybrid.ShogiPawn, hybrid.Black, hybrid.Position{X: 4, Y: 2}, 9)
	ahead = positionalBonus(hybrid.ShogiPawn, hybrid.Black, hybrid.Position{X: 4, Y: 5}, 9)
	if ahead >= back {
		t.Fatalf("black advance got=%v want<%v", ahead, back)
	}
}
