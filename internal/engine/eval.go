package engine

import (
	"gonum.org/v1/gonum/floats"

	"shogichess/internal/hybrid"
)

// Position is the read side of a game or shadow that evaluation needs.
type Position interface {
	Board() *hybrid.Board
	Pool(team hybrid.Team) *hybrid.Pool
}

// ======= material =======

var pieceValue = map[hybrid.Kind]float64{
	hybrid.ShogiKing:    100000,
	hybrid.ShogiPawn:    1,
	hybrid.ShogiLance:   5,
	hybrid.ShogiKnight:  6,
	hybrid.ShogiSilver:  9,
	hybrid.ShogiGold:    10,
	hybrid.ShogiBishop:  13,
	hybrid.ShogiRook:    15,
	hybrid.ShogiJumper:  13,
	hybrid.ShogiPhoenix: 27,

	hybrid.ChessKing:   100000,
	hybrid.ChessPawn:   3,
	hybrid.ChessKnight: 11,
	hybrid.ChessBishop: 11,
	hybrid.ChessRook:   14,
	hybrid.ChessQueen:  27,
	hybrid.ChessPillar: 10,
	hybrid.ChessWisp:   9,
	hybrid.ChessLance:  5,
}

// promoted values; kinds missing here keep their base value
var promotedValue = map[hybrid.Kind]float64{
	hybrid.ShogiPawn:   10,
	hybrid.ShogiLance:  10,
	hybrid.ShogiKnight: 10,
	hybrid.ShogiSilver: 10,
	hybrid.ShogiBishop: 19,
	hybrid.ShogiRook:   21,
	hybrid.ShogiJumper: 16,
	hybrid.ChessPawn:   23,
	hybrid.ChessLance:  11,
}

// positional weights: row rewards advancing (negative keeps a piece home),
// col penalises distance from the centre file
type posWeight struct{ row, col float64 }

var positionWeight = map[hybrid.Kind]posWeight{
	hybrid.ShogiKing:    {-1, 0},
	hybrid.ShogiRook:    {1, 0.1},
	hybrid.ShogiBishop:  {1, 0},
	hybrid.ShogiGold:    {0.5, 0.2},
	hybrid.ShogiSilver:  {1.5, 0.5},
	hybrid.ShogiKnight:  {0.5, 0.2},
	hybrid.ShogiLance:   {0, 0},
	hybrid.ShogiPawn:    {1, 0},
	hybrid.ShogiJumper:  {1, 0.5},
	hybrid.ShogiPhoenix: {0.5, 0.5},

	hybrid.ChessKing:   {-1, 0},
	hybrid.ChessQueen:  {1, 0.3},
	hybrid.ChessRook:   {1, 0.5},
	hybrid.ChessBishop: {1, 0},
	hybrid.ChessKnight: {1, 0.5},
	hybrid.ChessPawn:   {1, 0},
	hybrid.ChessPillar: {1, 0.2},
	hybrid.ChessWisp:   {1, 0.2},
	hybrid.ChessLance:  {0, 0},
}

// dense copy of pieceValue for the pool dot product
var baseValues = func() [hybrid.NumKinds]float64 {
	var v [hybrid.NumKinds]float64
	for k, val := range pieceValue {
		v[k] = val
	}
	return v
}()

func materialValue(k hybrid.Kind, promoted bool) float64 {
	if promoted {
		if v, ok := promotedValue[k]; ok {
			return v
		}
	}
	return pieceValue[k]
}

// positionalBonus is already signed: positive favours White.
func positionalBonus(k hybrid.Kind, team hybrid.Team, at hybrid.Position, size int) float64 {
	w := positionWeight[k]
	center := float64(size-1) / 2
	m := 1.0
	if team == hybrid.White {
		m = -1
	}
	rowScore := (center - float64(at.Y)) * w.row
	colScore := abs(center-float64(at.X)) * w.col * m
	return rowScore + colScore
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// poolMaterial values captured pieces at their unpromoted worth.
func poolMaterial(p *hybrid.Pool) float64 {
	counts := p.Counts()
	var vec [hybrid.NumKinds]float64
	for k, n := range counts {
		vec[k] = float64(n)
	}
	return floats.Dot(vec[:], baseValues[:])
}

// Evaluate scores a position from White's point of view: positive is good
// for White, negative for Black.
func Evaluate(pos Position) float64 {
	b := pos.Board()
	score := 0.0
	b.Each(func(at hybrid.Position, pc *hybrid.Piece) {
		val := materialValue(pc.Kind, pc.Promoted)
		if pc.Team == hybrid.White {
			score += val
		} else {
			score -= val
		}
		score += positionalBonus(pc.Kind, pc.Team, at, b.Size)
	})
	score += poolMaterial(pos.Pool(hybrid.White))
	score -= poolMaterial(pos.Pool(hybrid.Black))
	return score
}
