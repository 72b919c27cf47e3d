package hybrid

// guard is the check situation of one team, computed once per generation.
type guard struct {
	team    Team
	hasKing bool
	king    Position
	inCheck bool
	esc     Escapes
}

func (pos *position) guard(team Team) guard {
	g := guard{team: team}
	g.king, g.hasKing = pos.board.FindKing(team)
	if !g.hasKing {
		return g
	}
	g.esc = FindEscapes(g.king, EnemyMoves(pos.board, team, pos.last), pos.board.Size)
	g.inCheck = g.esc.State != Free
	return g
}

func aligned(a, b Position) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx == 0 || dy == 0 || abs(dx) == abs(dy)
}

// leavesKingSafe applies the move, tests for check and undoes it.
func (pos *position) leavesKingSafe(team Team, from, to Position) bool {
	rec, err := pos.applyMove(team, from, to, false)
	if err != nil {
		return false
	}
	safe := !InCheck(pos.board, team, pos.last)
	pos.undo(rec)
	return safe
}

func (pos *position) dropLeavesKingSafe(team Team, pc *Piece, to Position) bool {
	rec, err := pos.applyPlace(team, pc, to)
	if err != nil {
		return false
	}
	safe := !InCheck(pos.board, team, pos.last)
	pos.undo(rec)
	return safe
}

// moveAllowed filters a pseudo-legal move against self-check. The escape
// sets prune cheaply; anything that could expose the king is verified by
// make/undo.
func (pos *position) moveAllowed(g *guard, pc *Piece, from, to Position) bool {
	if !g.hasKing {
		return true
	}
	royal := isRoyal(pc.Kind)
	enPassant := pc.Kind == ChessPawn && !pc.Promoted && from.X != to.X && pos.board.At(to) == nil
	if g.inCheck {
		switch {
		case isCastling(pc, from, to):
			// castling out of check is allowed; the landing square still
			// has to be safe
		case royal && !containsPos(g.esc.KingSquares, to):
			return false
		case !royal && !enPassant && !containsPos(g.esc.Blocking, to):
			return false
		}
		return pos.leavesKingSafe(g.team, from, to)
	}
	if royal || enPassant || aligned(g.king, from) {
		return pos.leavesKingSafe(g.team, from, to)
	}
	return true
}

func isCastling(pc *Piece, from, to Position) bool {
	return pc.Kind == ChessKing && from.Y == to.Y && abs(to.X-from.X) == 2
}

func (pos *position) dropAllowed(g *guard, pc *Piece, to Position) bool {
	if !CanPlace(pc, to, pos.board) {
		return false
	}
	if !g.inCheck {
		return true
	}
	return containsPos(g.esc.Blocking, to) && pos.dropLeavesKingSafe(g.team, pc, to)
}

func (pos *position) appendPieceActions(out []Action, g *guard, pc *Piece, from Position) []Action {
	t := targetsOf(pos.board, pc, from, pos.last)
	for _, to := range t.Moves {
		if !pos.moveAllowed(g, pc, from, to) {
			continue
		}
		forced := pc.MustPromote(to.Y, pos.board.Size)
		a := Action{Type: ActionMove, Team: pc.Team, Kind: pc.Kind, From: from, To: to}
		if !forced {
			out = append(out, a)
		}
		if forced || pc.CanPromote(from.Y, to.Y, pos.board.Size) {
			a.Promote = true
			out = append(out, a)
		}
	}
	return out
}

func (pos *position) appendDrops(out []Action, g *guard) []Action {
	pool := pos.pools[g.team]
	for _, kind := range pool.Kinds() {
		pc := pool.FirstOfKind(kind)
		for y := 0; y < pos.board.Size; y++ {
			for x := 0; x < pos.board.Size; x++ {
				to := Position{X: x, Y: y}
				if pos.dropAllowed(g, pc, to) {
					out = append(out, Action{Type: ActionPlace, Team: g.team, Kind: kind, To: to})
				}
			}
		}
	}
	return out
}

// Actions generates the legal actions of team: board moves with their
// promotion variants first, then drops when requested. It also reports
// whether team is in check.
func (s *Shadow) Actions(team Team, drops bool) ([]Action, bool) {
	g := s.guard(team)
	// with no escape square and nothing to block, only castling is left
	mated := g.esc.State == Checkmate
	var out []Action
	s.board.Each(func(from Position, pc *Piece) {
		if pc.Team == team && (!mated || pc.Kind == ChessKing) {
			out = s.appendPieceActions(out, &g, pc, from)
		}
	})
	if drops && !mated {
		out = s.appendDrops(out, &g)
	}
	return out, g.inCheck
}

func (s *Shadow) LegalActions(team Team) []Action {
	out, _ := s.Actions(team, true)
	return out
}

// PieceActions lists the legal moves of the piece standing on from.
func (s *Shadow) PieceActions(from Position) []Action {
	pc := s.board.At(from)
	if pc == nil {
		return nil
	}
	g := s.guard(pc.Team)
	return s.appendPieceActions(nil, &g, pc, from)
}

// DropTargets lists the squares where the pooled piece may be dropped.
func (s *Shadow) DropTargets(team Team, pc *Piece) []Position {
	g := s.guard(team)
	var out []Position
	for y := 0; y < s.board.Size; y++ {
		for x := 0; x < s.board.Size; x++ {
			to := Position{X: x, Y: y}
			if s.dropAllowed(&g, pc, to) {
				out = append(out, to)
			}
		}
	}
	return out
}

func (s *Shadow) Escapes(team Team) Escapes { return s.guard(team).esc }

func (s *Shadow) InCheck(team Team) bool { return InCheck(s.board, team, s.last) }

// Status reports whether team is free, in check, checkmated or stalemated.
func (s *Shadow) Status(team Team) CheckState {
	acts, inCheck := s.Actions(team, true)
	switch {
	case len(acts) == 0 && inCheck:
		return Checkmate
	case len(acts) == 0:
		return Stalemate
	case inCheck:
		return Check
	}
	return Free
}
