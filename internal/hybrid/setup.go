package hybrid

import "fmt"

type BoardType string

const (
	ShogiBoard BoardType = "shogi"
	ChessBoard BoardType = "chess"
)

func (t BoardType) Size() int {
	if t == ChessBoard {
		return ChessSize
	}
	return ShogiSize
}

type placement struct {
	kind Kind
	at   []Position
}

// Layout is a starting arrangement for one side, written for Black.
type Layout struct {
	Name        string
	Board       BoardType
	PromoteLine int
	pieces      []placement
}

func rank(y, n int) []Position {
	out := make([]Position, n)
	for x := range out {
		out[x] = Position{X: x, Y: y}
	}
	return out
}

func squares(xy ...int) []Position {
	out := make([]Position, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Position{X: xy[i], Y: xy[i+1]})
	}
	return out
}

var layouts = map[string]Layout{
	"shogi": {Name: "shogi", Board: ShogiBoard, PromoteLine: 3, pieces: []placement{
		{ShogiKing, squares(4, 0)},
		{ShogiRook, squares(1, 1)},
		{ShogiBishop, squares(7, 1)},
		{ShogiGold, squares(3, 0, 5, 0)},
		{ShogiSilver, squares(2, 0, 6, 0)},
		{ShogiKnight, squares(1, 0, 7, 0)},
		{ShogiLance, squares(0, 0, 8, 0)},
		{ShogiPawn, rank(2, ShogiSize)},
	}},
	"wideChess": {Name: "wideChess", Board: ShogiBoard, PromoteLine: 1, pieces: []placement{
		{ChessKing, squares(5, 0)},
		{ChessQueen, squares(3, 0)},
		{ChessRook, squares(0, 0, 8, 0)},
		{ChessBishop, squares(2, 0, 6, 0)},
		{ChessKnight, squares(1, 0, 7, 0)},
		{ChessPawn, rank(1, ShogiSize)},
	}},
	"replaceShogi": {Name: "replaceShogi", Board: ShogiBoard, PromoteLine: 1, pieces: []placement{
		{ChessKing, squares(4, 0)},
		{ChessRook, squares(1, 1)},
		{ChessBishop, squares(7, 1)},
		{ChessPillar, squares(3, 0, 5, 0)},
		{ChessWisp, squares(2, 0, 6, 0)},
		{ChessKnight, squares(1, 0, 7, 0)},
		{ChessLance, squares(0, 0, 8, 0)},
		{ChessPawn, rank(2, ShogiSize)},
	}},
	"chess": {Name: "chess", Board: ChessBoard, PromoteLine: 1, pieces: []placement{
		{ChessKing, squares(4, 0)},
		{ChessQueen, squares(3, 0)},
		{ChessRook, squares(0, 0, 7, 0)},
		{ChessBishop, squares(2, 0, 5, 0)},
		{ChessKnight, squares(1, 0, 6, 0)},
		{ChessPawn, rank(1, ChessSize)},
	}},
	"narrowShogi": {Name: "narrowShogi", Board: ChessBoard, PromoteLine: 2, pieces: []placement{
		{ShogiKing, squares(4, 0)},
		{ShogiRook, squares(1, 1)},
		{ShogiBishop, squares(6, 1)},
		{ShogiGold, squares(3, 0, 5, 0)},
		{ShogiSilver, squares(2, 0, 6, 0)},
		{ShogiKnight, squares(1, 0)},
		{ShogiLance, squares(0, 0, 7, 0)},
		{ShogiPawn, rank(2, ChessSize)},
	}},
	"replaceChess": {Name: "replaceChess", Board: ChessBoard, PromoteLine: 2, pieces: []placement{
		{ShogiKing, squares(4, 0)},
		{ShogiPhoenix, squares(3, 0)},
		{ShogiRook, squares(0, 0, 7, 0)},
		{ShogiBishop, squares(2, 0, 5, 0)},
		{ShogiJumper, squares(1, 0, 6, 0)},
		{ShogiPawn, rank(1, ChessSize)},
	}},
}

func LookupLayout(name string) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}

// LayoutNames lists the layouts that fit a board type.
func LayoutNames(t BoardType) []string {
	var out []string
	for _, name := range []string{"shogi", "wideChess", "replaceShogi", "chess", "narrowShogi", "replaceChess"} {
		if layouts[name].Board == t {
			out = append(out, name)
		}
	}
	return out
}

// mirror maps a Black layout square to White's side: point symmetry on
// the shogi board, a vertical flip on the chess board.
func mirror(t BoardType, p Position) Position {
	n := t.Size() - 1
	if t == ChessBoard {
		return Position{X: p.X, Y: n - p.Y}
	}
	return Position{X: n - p.X, Y: n - p.Y}
}

type TeamSetup struct {
	PlayerID  string `json:"player_id"`
	Layout    string `json:"layout"`
	Placeable bool   `json:"placeable"`
}

type Setup struct {
	Board BoardType `json:"board_type"`
	Black TeamSetup `json:"black"`
	White TeamSetup `json:"white"`
}

func (s Setup) Validate() error {
	if s.Board != ShogiBoard && s.Board != ChessBoard {
		return fmt.Errorf("%w: board type %q", ErrUnknownLayout, s.Board)
	}
	for _, ts := range []TeamSetup{s.Black, s.White} {
		l, err := LookupLayout(ts.Layout)
		if err != nil {
			return err
		}
		if l.Board != s.Board {
			return fmt.Errorf("%w: %q does not fit a %s board", ErrUnknownLayout, ts.Layout, s.Board)
		}
	}
	return nil
}

// populate places a team's layout on the board, numbering pieces from next.
func populate(b *Board, t BoardType, team Team, ts TeamSetup, next PieceID) (PieceID, error) {
	l, err := LookupLayout(ts.Layout)
	if err != nil {
		return next, err
	}
	for _, pl := range l.pieces {
		for _, p := range pl.at {
			if team == White {
				p = mirror(t, p)
			}
			if err := b.Place(NewPiece(next, pl.kind, team, l.PromoteLine, ts.Placeable), p); err != nil {
				return next, fmt.Errorf("layout %s: %w", l.Name, err)
			}
			next++
		}
	}
	return next, nil
}
