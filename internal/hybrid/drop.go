package hybrid

// CanPlace reports whether a captured piece may be dropped on p.
func CanPlace(pc *Piece, p Position, b *Board) bool {
	if pc.BannedPlace || !p.In(b.Size) || b.At(p) != nil {
		return false
	}
	if pc.ImmobileRow > 0 && !behindLine(pc.Team, b.Size, p.Y, pc.ImmobileRow) {
		return false
	}
	if isPawnLike(pc.Kind) && hasPawnInFile(b, pc.Team, p.X) {
		return false
	}
	return true
}

// hasPawnInFile: two unpromoted pawns of a team may not share a file,
// whether they are shogi or chess pawns.
func hasPawnInFile(b *Board, team Team, x int) bool {
	for y := 0; y < b.Size; y++ {
		pc := b.At(Position{X: x, Y: y})
		if pc != nil && pc.Team == team && isPawnLike(pc.Kind) && !pc.Promoted {
			return true
		}
	}
	return false
}
