package hybrid

// ActionRequest is an action as submitted by a player: the piece is named
// by id and the target by coordinates.
type ActionRequest struct {
	PieceID PieceID    `json:"piece_id"`
	Promote bool       `json:"promote"`
	Type    ActionType `json:"action_type"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
}

// Perform validates req for the side to move and applies it. A rejected
// request leaves the game unchanged.
func (g *Game) Perform(req ActionRequest) (*LastMove, error) {
	team := g.CurrentTeam()
	to := Position{X: req.X, Y: req.Y}
	switch req.Type {
	case ActionMove:
		return g.performMove(team, req.PieceID, to, req.Promote)
	case ActionPlace:
		return g.performPlace(team, req.PieceID, to)
	}
	return nil, actionErr(req.Type.String(), req.PieceID, to, ErrIllegalAction)
}

func (g *Game) pooled(id PieceID) *Piece {
	if pc := g.white.Captured.ByID(id); pc != nil {
		return pc
	}
	return g.black.Captured.ByID(id)
}

func (g *Game) performMove(team Team, id PieceID, to Position, promote bool) (*LastMove, error) {
	pc, from, onBoard := g.board.PieceByID(id)
	if !onBoard {
		if g.pooled(id) != nil {
			return nil, actionErr("move", id, to, ErrIllegalAction)
		}
		return nil, actionErr("move", id, to, ErrInvalidPieceReference)
	}
	if pc.Team != team {
		return nil, actionErr("move", id, to, ErrInvalidPieceReference)
	}
	legal := false
	for _, a := range NewShadow(g).PieceActions(from) {
		if a.To == to {
			legal = true
			break
		}
	}
	if !legal {
		return nil, actionErr("move", id, to, ErrIllegalAction)
	}
	live := g.live()
	if _, err := live.applyMove(team, from, to, promote); err != nil {
		return nil, actionErr("move", id, to, err)
	}
	g.nextTurn(live.last)
	return g.lastMove, nil
}

func (g *Game) performPlace(team Team, id PieceID, to Position) (*LastMove, error) {
	pc := g.Pool(team).ByID(id)
	if pc == nil {
		if _, _, onBoard := g.board.PieceByID(id); onBoard {
			return nil, actionErr("place", id, to, ErrIllegalAction)
		}
		return nil, actionErr("place", id, to, ErrInvalidPieceReference)
	}
	if !to.In(g.board.Size) {
		return nil, actionErr("place", id, to, ErrIllegalAction)
	}
	if g.board.At(to) != nil {
		return nil, actionErr("place", id, to, ErrOccupiedTarget)
	}
	sh := NewShadow(g)
	if !containsPos(sh.DropTargets(team, sh.Pool(team).ByID(id)), to) {
		return nil, actionErr("place", id, to, ErrIllegalAction)
	}
	live := g.live()
	if _, err := live.applyPlace(team, pc, to); err != nil {
		return nil, actionErr("place", id, to, err)
	}
	g.nextTurn(live.last)
	return g.lastMove, nil
}

// RequestFor converts a generated action into a request naming a concrete
// piece.
func (g *Game) RequestFor(a Action) (ActionRequest, error) {
	req := ActionRequest{Type: a.Type, Promote: a.Promote, X: a.To.X, Y: a.To.Y}
	switch a.Type {
	case ActionMove:
		pc := g.board.At(a.From)
		if pc == nil || pc.Team != a.Team {
			return req, actionErr("move", -1, a.To, ErrInvalidPieceReference)
		}
		req.PieceID = pc.ID
	case ActionPlace:
		pc := g.Pool(a.Team).FirstOfKind(a.Kind)
		if pc == nil {
			return req, actionErr("place", -1, a.To, ErrInvalidPieceReference)
		}
		req.PieceID = pc.ID
	}
	return req, nil
}
