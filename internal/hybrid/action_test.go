package hybrid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPerformRejectsWithoutMutation(t *testing.T) {
	// the white rook is pinned to its king by the black rook; white holds a pawn
	const diagram = "4k4/9/9/9/4r4/9/9/4R4/4K4 w"

	tests := []struct {
		name string
		req  ActionRequest
		want error
	}{
		{"unknown id", ActionRequest{PieceID: 99, Type: ActionMove, X: 4, Y: 5}, ErrInvalidPieceReference},
		{"opponent piece", ActionRequest{PieceID: 1, Type: ActionMove, X: 4, Y: 5}, ErrInvalidPieceReference},
		{"pinned rook leaves the file", ActionRequest{PieceID: 2, Type: ActionMove, X: 0, Y: 7}, ErrIllegalAction},
		{"unreachable target", ActionRequest{PieceID: 3, Type: ActionMove, X: 0, Y: 0}, ErrIllegalAction},
		{"drop a piece that is on the board", ActionRequest{PieceID: 2, Type: ActionPlace, X: 0, Y: 4}, ErrIllegalAction},
		{"move a pooled piece", ActionRequest{PieceID: 50, Type: ActionMove, X: 0, Y: 4}, ErrIllegalAction},
		{"drop on an occupied square", ActionRequest{PieceID: 50, Type: ActionPlace, X: 4, Y: 0}, ErrOccupiedTarget},
		{"drop a pawn on the far row", ActionRequest{PieceID: 50, Type: ActionPlace, X: 0, Y: 0}, ErrIllegalAction},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustDiagram(t, diagram)
			g.Pool(White).Add(NewPiece(50, ShogiPawn, White, 3, true))
			before := g.Snapshot()

			_, err := g.Perform(tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got=%v want=%v", err, tc.want)
			}
			var ae *ActionError
			if !errors.As(err, &ae) || ae.PieceID != tc.req.PieceID {
				t.Fatalf("expected ActionError for piece %s, got %v", tc.req.PieceID, err)
			}
			if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
				t.Fatalf("rejected action changed the game (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPerformAdvancesTurn(t *testing.T) {
	g := mustGame(t, ShogiBoard, "shogi", "shogi")
	if g.CurrentTeam() != White || g.Step() != 1 {
		t.Fatalf("initial turn: got=%v/%d want=white/1", g.CurrentTeam(), g.Step())
	}

	// white pawn on file 2 steps forward
	pc := g.Board().At(Position{2, 6})
	last, err := g.Perform(ActionRequest{PieceID: pc.ID, Type: ActionMove, X: 2, Y: 5})
	if err != nil {
		t.Fatalf("perform: %v", err)
	}
	want := &LastMove{ActionType: ActionMove, PieceID: pc.ID, Kind: ShogiPawn, Team: White, From: &Position{2, 6}, To: Position{2, 5}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("last move mismatch (-want +got):\n%s", diff)
	}
	if g.CurrentTeam() != Black || g.Step() != 2 {
		t.Fatalf("turn after move: got=%v/%d want=black/2", g.CurrentTeam(), g.Step())
	}
	if _, err := g.Perform(ActionRequest{PieceID: pc.ID, Type: ActionMove, X: 2, Y: 4}); !errors.Is(err, ErrInvalidPieceReference) {
		t.Fatalf("moving out of turn: got=%v want=%v", err, ErrInvalidPieceReference)
	}
}

func TestCaptureAndDrop(t *testing.T) {
	g := mustDiagram(t, "4k4/9/9/9/4p4/4R4/9/9/4K4 w")
	// ids: k=a, p=b, R=c, K=d
	if _, err := g.Perform(ActionRequest{PieceID: 2, Type: ActionMove, X: 4, Y: 4}); err != nil {
		t.Fatalf("capture: %v", err)
	}
	taken := g.Pool(White).ByID(1)
	if taken == nil || taken.Team != White || taken.Promoted {
		t.Fatalf("captured pawn in pool: %+v", taken)
	}
	if _, err := g.Perform(ActionRequest{PieceID: 0, Type: ActionMove, X: 3, Y: 0}); err != nil {
		t.Fatalf("black reply: %v", err)
	}
	last, err := g.Perform(ActionRequest{PieceID: 1, Type: ActionPlace, X: 0, Y: 4})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if last.From != nil || last.ActionType != ActionPlace {
		t.Fatalf("drop last move: %+v", last)
	}
	pc := g.Board().At(Position{0, 4})
	if pc == nil || pc.ID != 1 || !pc.Rearranged || pc.Team != White {
		t.Fatalf("dropped pawn: %+v", pc)
	}
	if g.Pool(White).Len() != 0 {
		t.Fatalf("pool not emptied: %d", g.Pool(White).Len())
	}
}

func TestRequestFor(t *testing.T) {
	g := mustDiagram(t, "4k4/9/9/9/9/9/9/9/4K4 w")
	g.Pool(White).Add(NewPiece(8, ShogiGold, White, 3, true))
	g.Pool(White).Add(NewPiece(5, ShogiGold, White, 3, true))

	req, err := g.RequestFor(Action{Type: ActionPlace, Team: White, Kind: ShogiGold, To: Position{1, 1}})
	if err != nil {
		t.Fatalf("request for drop: %v", err)
	}
	if req.PieceID != 5 {
		t.Fatalf("drop uses lowest id: got=%s want=%s", req.PieceID, PieceID(5))
	}
	if _, err := g.RequestFor(Action{Type: ActionMove, Team: White, From: Position{0, 0}, To: Position{0, 1}}); !errors.Is(err, ErrInvalidPieceReference) {
		t.Fatalf("empty origin: got=%v want=%v", err, ErrInvalidPieceReference)
	}
}

func TestRepetitionDraw(t *testing.T) {
	g := mustDiagram(t, "4k4/9/9/9/9/9/9/9/4K4 w")
	shuffle := []ActionRequest{
		{PieceID: 1, Type: ActionMove, X: 4, Y: 7},
		{PieceID: 0, Type: ActionMove, X: 4, Y: 1},
		{PieceID: 1, Type: ActionMove, X: 4, Y: 8},
		{PieceID: 0, Type: ActionMove, X: 4, Y: 0},
	}
	for i := 0; i < 16; i++ {
		if res := g.Result(); res.Kind != Ongoing {
			if res.Reason != "repetition" {
				t.Fatalf("unexpected result at ply %d: %+v", i, res)
			}
			return
		}
		if _, err := g.Perform(shuffle[i%len(shuffle)]); err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
	}
	if res := g.Result(); res.Kind != Draw || res.Reason != "repetition" {
		t.Fatalf("result after 16 plies: got=%+v want draw by repetition", res)
	}
}
