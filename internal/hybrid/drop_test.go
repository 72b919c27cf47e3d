package hybrid

import (
	"errors"
	"testing"
)

func TestCanPlace(t *testing.T) {
	// black pawn on file 2
	g := mustDiagram(t, "4k4/9/9/2p6/9/9/9/9/4K4 b")
	b := g.Board()

	pawn := NewPiece(100, ShogiPawn, Black, 3, true)
	knight := NewPiece(101, ShogiKnight, Black, 3, true)
	lance := NewPiece(102, ShogiLance, Black, 3, true)
	banned := NewPiece(103, ShogiGold, Black, 3, false)
	chessPawn := NewPiece(104, ChessPawn, Black, 1, true)

	tests := []struct {
		name string
		pc   *Piece
		at   Position
		want bool
	}{
		{"pawn on a free file", pawn, Position{3, 5}, true},
		{"second pawn on a file", pawn, Position{2, 5}, false},
		{"pawn on the last row", pawn, Position{3, 8}, false},
		{"pawn on an occupied square", pawn, Position{4, 0}, false},
		{"pawn off the board", pawn, Position{9, 4}, false},
		{"knight on the second to last row", knight, Position{3, 7}, false},
		{"knight two rows out", knight, Position{3, 6}, true},
		{"lance on the last row", lance, Position{3, 8}, false},
		{"drop disabled for the team", banned, Position{3, 4}, false},
		{"chess pawn onto a file with a shogi pawn", chessPawn, Position{2, 5}, false},
		{"chess pawn on a free file", chessPawn, Position{3, 5}, true},
	}
	for _, tc := range tests {
		if got := CanPlace(tc.pc, tc.at, b); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}

	promoted := b.At(Position{2, 3})
	promoted.Promoted = true
	if !CanPlace(pawn, Position{2, 5}, b) {
		t.Fatalf("a promoted pawn must not block drops on its file")
	}
}

func TestPawnDropMixedFamilies(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		dropped Kind
	}{
		{"chess pawn dropped beside a shogi pawn", "4k4/9/9/2p6/9/9/9/9/4K4 b", ChessPawn},
		{"shogi pawn dropped beside a chess pawn", "4k4/9/9/2^p6/9/9/9/9/4K4 b", ShogiPawn},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustDiagram(t, tc.diagram)
			g.Pool(Black).Add(NewPiece(100, tc.dropped, Black, 1, true))
			s := NewShadow(g)
			if err := s.Place(Black, tc.dropped, Position{2, 5}); !errors.Is(err, ErrIllegalAction) {
				t.Fatalf("drop on a pawn file: got=%v want=%v", err, ErrIllegalAction)
			}
			if err := s.Place(Black, tc.dropped, Position{3, 5}); err != nil {
				t.Fatalf("drop on a free file: got=%v want=<nil>", err)
			}
		})
	}
}

func TestDropsInLegalActions(t *testing.T) {
	g := mustDiagram(t, "4k4/9/9/2p6/9/9/9/9/4K4 b")
	g.Pool(Black).Add(NewPiece(100, ShogiPawn, Black, 3, true))
	g.Pool(Black).Add(NewPiece(101, ShogiPawn, Black, 3, true))

	acts := NewShadow(g).LegalActions(Black)
	drops := 0
	for _, a := range acts {
		if a.Type != ActionPlace {
			continue
		}
		drops++
		if a.To.X == 2 || a.To.Y == 8 {
			t.Fatalf("illegal drop generated: %v", a)
		}
	}
	// 8 free files, rows 0..7, minus the black king's square
	if want := 8*8 - 1; drops != want {
		t.Fatalf("drop count: got=%d want=%d", drops, want)
	}
}

func TestForcedPromotion(t *testing.T) {
	g := mustDiagram(t, "8k/9/9/9/9/9/9/p8/8K b")
	acts := NewShadow(g).PieceActions(Position{0, 7})
	if len(acts) != 1 || !acts[0].Promote {
		t.Fatalf("pawn reaching the last row: got=%v want a single promoting move", acts)
	}

	if _, err := g.Perform(ActionRequest{PieceID: 1, Type: ActionMove, X: 0, Y: 8}); err != nil {
		t.Fatalf("perform: %v", err)
	}
	if pc := g.Board().At(Position{0, 8}); pc == nil || !pc.Promoted {
		t.Fatalf("pawn not promoted on the last row: %+v", pc)
	}
}

func TestOptionalPromotion(t *testing.T) {
	g := mustDiagram(t, "8k/9/9/9/9/s8/9/9/8K b")
	acts := NewShadow(g).PieceActions(Position{0, 5})
	var plain, promoting int
	for _, a := range acts {
		if a.Promote {
			promoting++
		} else {
			plain++
		}
	}
	// silver on the edge file: two forward moves reach the zone, one back move does not
	if plain != 3 || promoting != 2 {
		t.Fatalf("silver actions: got plain=%d promoting=%d want 3/2 (%v)", plain, promoting, acts)
	}

	if _, err := g.Perform(ActionRequest{PieceID: 1, Type: ActionMove, X: 0, Y: 6, Promote: true}); err != nil {
		t.Fatalf("perform: %v", err)
	}
	if !g.Board().At(Position{0, 6}).Promoted {
		t.Fatalf("requested promotion not applied")
	}
}
