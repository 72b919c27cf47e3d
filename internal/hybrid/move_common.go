package hybrid

// Targets is the pseudo-legal reach of one piece. Self-check is not
// considered here.
type Targets struct {
	Moves       []Position // empty or enemy-occupied destinations
	AllyBlocked []Position // own pieces the piece defends
	Slides      []Position // subset of Moves and AllyBlocked reached along a ray
}

func (t Targets) Contains(p Position) bool {
	for _, m := range t.Moves {
		if m == p {
			return true
		}
	}
	return false
}

// LegalTargets computes the reachable squares of a piece of the given kind
// standing on from.
func LegalTargets(kind Kind, from Position, team Team, promoted bool, b *Board, firstMove, rearranged bool, last *LastMove) Targets {
	var t Targets
	switch kind {
	case ChessPawn:
		genChessPawnMoves(b, from, team, promoted, firstMove, rearranged, last, &t)
	case ChessKing:
		sweep(b, from, team, rules[ChessKing].normal, &t)
		if firstMove {
			genCastlingMoves(b, from, team, &t)
		}
	default:
		sweep(b, from, team, ruleOf(kind).shape(promoted), &t)
	}
	return t
}

func targetsOf(b *Board, p *Piece, from Position, last *LastMove) Targets {
	return LegalTargets(p.Kind, from, p.Team, p.Promoted, b, p.IsFirstMove(), p.Rearranged, last)
}

func sweep(b *Board, from Position, team Team, sh shape, t *Targets) {
	for _, o := range sh.steps {
		dx, dy := orient(team, o.dx, o.dy)
		to := from.Add(dx, dy)
		if !to.In(b.Size) {
			continue
		}
		if pc := b.At(to); pc != nil && pc.Team == team {
			t.AllyBlocked = append(t.AllyBlocked, to)
			continue
		}
		t.Moves = append(t.Moves, to)
	}
	for _, o := range sh.rays {
		dx, dy := orient(team, o.dx, o.dy)
		for to := from.Add(dx, dy); to.In(b.Size); to = to.Add(dx, dy) {
			pc := b.At(to)
			t.Slides = append(t.Slides, to)
			if pc == nil {
				t.Moves = append(t.Moves, to)
				continue
			}
			if pc.Team != team {
				t.Moves = append(t.Moves, to)
			} else {
				t.AllyBlocked = append(t.AllyBlocked, to)
			}
			break
		}
	}
}

// coverage splits the squares a piece attacks into step and slide reach.
// An unpromoted chess pawn attacks only its forward diagonals; castling
// never attacks.
func coverage(b *Board, p *Piece, from Position, last *LastMove) (steps, slides []Position) {
	switch {
	case p.Kind == ChessPawn && !p.Promoted:
		dy := forwardY(p.Team)
		for _, dx := range []int{-1, 1} {
			if to := from.Add(dx, dy); to.In(b.Size) {
				steps = append(steps, to)
			}
		}
		return steps, nil
	case p.Kind == ChessKing:
		var t Targets
		sweep(b, from, p.Team, rules[ChessKing].normal, &t)
		return append(t.Moves, t.AllyBlocked...), nil
	}
	t := targetsOf(b, p, from, last)
	if len(t.Slides) == 0 {
		return append(t.Moves, t.AllyBlocked...), nil
	}
	for _, sq := range append(t.Moves, t.AllyBlocked...) {
		if containsPos(t.Slides, sq) {
			slides = append(slides, sq)
		} else {
			steps = append(steps, sq)
		}
	}
	return steps, slides
}

func containsPos(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
