package hybrid

// chess_pawn: one step forward onto an empty square, two on its first move,
// diagonal captures and en passant. Promoted it slides in all eight
// directions, or steps like a king when it was dropped back in.
func genChessPawnMoves(b *Board, from Position, team Team, promoted, firstMove, rearranged bool, last *LastMove, t *Targets) {
	if promoted {
		if rearranged {
			sweep(b, from, team, shape{steps: kingSteps}, t)
		} else {
			sweep(b, from, team, shape{rays: kingSteps}, t)
		}
		return
	}

	dy := forwardY(team)
	one := from.Add(0, dy)
	if one.In(b.Size) && b.At(one) == nil {
		t.Moves = append(t.Moves, one)
		two := from.Add(0, 2*dy)
		if firstMove && two.In(b.Size) && b.At(two) == nil {
			t.Moves = append(t.Moves, two)
		}
	}

	for _, dx := range []int{-1, 1} {
		to := from.Add(dx, dy)
		if !to.In(b.Size) {
			continue
		}
		pc := b.At(to)
		switch {
		case pc != nil && pc.Team != team:
			t.Moves = append(t.Moves, to)
		case pc != nil:
			t.AllyBlocked = append(t.AllyBlocked, to)
		default:
			if _, ok := enPassantVictim(b, team, to, last); ok {
				t.Moves = append(t.Moves, to)
			}
		}
	}
}

// enPassantVictim returns the square of the pawn that may be taken en
// passant by a pawn of team landing on the empty square to.
func enPassantVictim(b *Board, team Team, to Position, last *LastMove) (Position, bool) {
	if last == nil || last.ActionType != ActionMove || last.From == nil {
		return Position{}, false
	}
	if last.Kind != ChessPawn || last.Team == team || abs(last.To.Y-last.From.Y) != 2 {
		return Position{}, false
	}
	victimSq := Position{X: to.X, Y: to.Y - forwardY(team)}
	if last.To != victimSq {
		return Position{}, false
	}
	victim := b.At(victimSq)
	if victim == nil || victim.ID != last.PieceID || victim.Team == team {
		return Position{}, false
	}
	return victimSq, true
}
