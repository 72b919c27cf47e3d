package hybrid

// genCastlingMoves scans left and right from a chess king on its first move.
// The first piece met must be an own chess_rook that has not moved, at least
// three files away so the king's target lies strictly between them.
func genCastlingMoves(b *Board, from Position, team Team, t *Targets) {
	for _, dir := range []int{-1, 1} {
		if _, ok := castlingRook(b, from, team, dir); ok {
			t.Moves = append(t.Moves, from.Add(2*dir, 0))
		}
	}
}

func castlingRook(b *Board, from Position, team Team, dir int) (Position, bool) {
	for sq := from.Add(dir, 0); sq.In(b.Size); sq = sq.Add(dir, 0) {
		if castlingSquareAttacked(b, sq, team) {
			return Position{}, false
		}
		pc := b.At(sq)
		if pc == nil {
			continue
		}
		if pc.Team != team || pc.Kind != ChessRook || !pc.IsFirstMove() {
			return Position{}, false
		}
		if abs(sq.X-from.X) < 3 {
			return Position{}, false
		}
		return sq, true
	}
	return Position{}, false
}

// castlingSquareAttacked always reports false: castling through or out of
// an attacked square is not checked. Landing in check is still rejected by
// the self-check filter.
func castlingSquareAttacked(*Board, Position, Team) bool { return false }
