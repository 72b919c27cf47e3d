package httpserver

import "shogichess/internal/hybrid"

// buildView renders g for the client. Legal actions are listed for the
// side to move only.
func buildView(id string, g *hybrid.Game) GameView {
	b := g.Board()
	setup := g.Setup()
	sh := hybrid.NewShadow(g)
	team := g.CurrentTeam()

	v := GameView{
		GameID: id,
		Board:  make([][]*PieceView, b.Size),
		BoardSettings: BoardSettings{
			Type:       setup.Board,
			Size:       b.Size,
			BlackBoard: setup.Black.Layout,
			WhiteBoard: setup.White.Layout,
		},
		CapturedPieces: CapturedPieces{
			Black: capturedGroups(g.Pool(hybrid.Black)),
			White: capturedGroups(g.Pool(hybrid.White)),
		},
		LegalActions: make(map[hybrid.PieceID]LegalActions),
		Turn:         Turn{Player: team, Step: g.Step()},
		LastMove:     g.LastMove(),
		CheckStatus: CheckStatus{
			White: sh.InCheck(hybrid.White),
			Black: sh.InCheck(hybrid.Black),
		},
	}
	for y := range v.Board {
		v.Board[y] = make([]*PieceView, b.Size)
	}
	b.Each(func(at hybrid.Position, pc *hybrid.Piece) {
		v.Board[at.Y][at.X] = pieceView(pc)
	})

	if res := g.Result(); res.Kind != hybrid.Ongoing {
		v.GameResult = &res
		return v
	}
	b.Each(func(at hybrid.Position, pc *hybrid.Piece) {
		if pc.Team == team {
			v.LegalActions[pc.ID] = LegalActions{Moves: moveOptions(sh.PieceActions(at)), Places: []hybrid.Position{}}
		}
	})
	for _, pc := range g.Pool(team).Pieces() {
		places := sh.DropTargets(team, pc)
		if places == nil {
			places = []hybrid.Position{}
		}
		v.LegalActions[pc.ID] = LegalActions{Moves: []MoveOption{}, Places: places}
	}
	return v
}

func pieceView(pc *hybrid.Piece) *PieceView {
	return &PieceView{
		ID:          pc.ID,
		Name:        pc.Kind,
		Promoted:    pc.Promoted,
		Promotable:  !pc.Promoted && !pc.BannedPromote,
		PromoteLine: pc.PromoteLine,
		ImmobileRow: pc.ImmobileRow,
		Rearranged:  pc.Rearranged,
		Team:        pc.Team,
	}
}

func capturedGroups(p *hybrid.Pool) []CapturedGroup {
	out := []CapturedGroup{}
	index := make(map[hybrid.Kind]int)
	for _, pc := range p.Pieces() {
		i, ok := index[pc.Kind]
		if !ok {
			i = len(out)
			index[pc.Kind] = i
			out = append(out, CapturedGroup{Name: pc.Kind, Placeable: !pc.BannedPlace})
		}
		out[i].PieceIDs = append(out[i].PieceIDs, pc.ID)
	}
	return out
}

// moveOptions folds the plain and promoting variants of each target.
func moveOptions(acts []hybrid.Action) []MoveOption {
	type variants struct{ plain, promote bool }
	var order []hybrid.Position
	seen := make(map[hybrid.Position]*variants)
	for _, a := range acts {
		v, ok := seen[a.To]
		if !ok {
			v = &variants{}
			seen[a.To] = v
			order = append(order, a.To)
		}
		if a.Promote {
			v.promote = true
		} else {
			v.plain = true
		}
	}
	out := make([]MoveOption, 0, len(order))
	for _, to := range order {
		opt := MoveOption{X: to.X, Y: to.Y}
		switch v := seen[to]; {
		case v.promote && v.plain:
			opt.Promotion = "optional"
		case v.promote:
			opt.Promotion = "forced"
		}
		out = append(out, opt)
	}
	return out
}
