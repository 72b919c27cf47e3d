package hybrid

type ReachKind int8

const (
	Step ReachKind = iota
	Slide
)

// EnemyMove is the attack reach of one enemy piece, of one kind.
type EnemyMove struct {
	From  Position
	Reach []Position
	Kind  ReachKind
}

type CheckState int8

const (
	Free CheckState = iota
	Check
	Checkmate
	Stalemate
)

func (s CheckState) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "free"
}

func (s CheckState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Escapes lists the squares that can resolve a check.
type Escapes struct {
	KingSquares []Position // flight squares not covered by the enemy
	Blocking    []Position // capture or interposition squares
	State       CheckState
	Checkers    int
}

// FindEscapes analyses the king's situation from enemy coverage alone.
// Flight squares may still hold own pieces; callers intersect them with the
// king's actual targets.
func FindEscapes(king Position, enemy []EnemyMove, size int) Escapes {
	var covered [MaxBoardSize * MaxBoardSize]bool
	for _, em := range enemy {
		for _, sq := range em.Reach {
			if sq.In(size) {
				covered[sq.Y*MaxBoardSize+sq.X] = true
			}
		}
	}

	var esc Escapes
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			sq := king.Add(dx, dy)
			if sq.In(size) && !covered[sq.Y*MaxBoardSize+sq.X] {
				esc.KingSquares = append(esc.KingSquares, sq)
			}
		}
	}

	var checkers []Position
	for _, em := range enemy {
		if !containsPos(em.Reach, king) {
			continue
		}
		if !containsPos(checkers, em.From) {
			checkers = append(checkers, em.From)
		}
		esc.Blocking = appendUnique(esc.Blocking, em.From)
		if em.Kind != Slide {
			continue
		}
		dx, dy := sign(king.X-em.From.X), sign(king.Y-em.From.Y)
		esc.KingSquares = removePos(esc.KingSquares, king.Add(dx, dy))
		for sq, n := em.From.Add(dx, dy), 0; sq != king && n < size; sq, n = sq.Add(dx, dy), n+1 {
			esc.Blocking = appendUnique(esc.Blocking, sq)
		}
	}

	esc.Checkers = len(checkers)
	if esc.Checkers > 1 {
		esc.Blocking = nil
	}
	switch {
	case esc.Checkers == 0:
		esc.State = Free
	case len(esc.KingSquares) == 0 && len(esc.Blocking) == 0:
		esc.State = Checkmate
	default:
		esc.State = Check
	}
	return esc
}

// EnemyMoves collects the attack reach of every piece not on team. A piece
// with both step and ray movement yields one entry of each kind.
func EnemyMoves(b *Board, team Team, last *LastMove) []EnemyMove {
	var out []EnemyMove
	b.Each(func(at Position, pc *Piece) {
		if pc.Team == team {
			return
		}
		steps, slides := coverage(b, pc, at, last)
		if len(steps) > 0 {
			out = append(out, EnemyMove{From: at, Reach: steps, Kind: Step})
		}
		if len(slides) > 0 {
			out = append(out, EnemyMove{From: at, Reach: slides, Kind: Slide})
		}
	})
	return out
}

// IsAttacked reports whether any piece of team by covers sq.
func IsAttacked(b *Board, sq Position, by Team, last *LastMove) bool {
	found := false
	b.Each(func(at Position, pc *Piece) {
		if found || pc.Team != by {
			return
		}
		steps, slides := coverage(b, pc, at, last)
		found = containsPos(steps, sq) || containsPos(slides, sq)
	})
	return found
}

// InCheck reports whether team's king is attacked. A team without a king is
// never in check.
func InCheck(b *Board, team Team, last *LastMove) bool {
	king, ok := b.FindKing(team)
	if !ok {
		return false
	}
	return IsAttacked(b, king, team.Opponent(), last)
}

func appendUnique(list []Position, p Position) []Position {
	if containsPos(list, p) {
		return list
	}
	return append(list, p)
}

func removePos(list []Position, p Position) []Position {
	for i, q := range list {
		if q == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
