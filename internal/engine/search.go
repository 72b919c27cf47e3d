package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"shogichess/internal/hybrid"
)

const (
	// larger than any reachable score
	scoreInf = 1_000_000_000

	// MateScore is the base score of a checkmate. The remaining depth is
	// added so that faster mates score further from zero.
	MateScore = 10_000_000

	defaultDepth = 3
)

var (
	// ErrNoAction is returned by TakeTurn when no action could be chosen
	// or applied. It wraps the underlying cause.
	ErrNoAction = errors.New("engine: no action taken")

	errSearchAborted = errors.New("engine: search aborted")
)

// SearchConfig bounds a search. DropHorizon 0 keeps the engine's horizon;
// a negative value keeps drops at every depth.
type SearchConfig struct {
	MaxDepth    int           // plies; 0 means the default depth
	TimeLimit   time.Duration // 0 means no limit
	NodeLimit   int64         // 0 means no limit
	DropHorizon int
}

type SearchResult struct {
	Best     *hybrid.Action // nil when nothing was searched
	Score    float64        // positive favours White
	Depth    int            // deepest completed iteration
	Nodes    int64
	TimeUsed time.Duration
}

// actions generates the candidates at a node. Drops are skipped near the
// horizon unless the side is in check or has no board move.
func (e *Engine) actions(sh *hybrid.Shadow, team hybrid.Team, depth int) ([]hybrid.Action, bool) {
	drops := depth > e.dropHorizon
	acts, inCheck := sh.Actions(team, drops)
	if !drops && (inCheck || len(acts) == 0) {
		acts, inCheck = sh.Actions(team, true)
	}
	return acts, inCheck
}

// terminalScore scores a side to move that has no action.
func terminalScore(team hybrid.Team, inCheck bool, depth int) float64 {
	if !inCheck {
		return 0
	}
	mate := float64(MateScore + depth)
	if team == hybrid.White {
		return -mate
	}
	return mate
}

// FindBestMove searches depth plies from the shadow's current position with
// team to move and returns the chosen action and its minimax value. White
// maximises. The shadow is returned to its starting state. With no legal
// action it returns ErrNoLegalMoves together with the mate or stalemate
// score.
func (e *Engine) FindBestMove(sh *hybrid.Shadow, team hybrid.Team, depth int, alpha, beta float64) (*hybrid.Action, float64, error) {
	if err := e.tick(); err != nil {
		return nil, 0, err
	}
	if depth <= 0 {
		return nil, Evaluate(sh), nil
	}
	acts, inCheck := e.actions(sh, team, depth)
	if len(acts) == 0 {
		return nil, terminalScore(team, inCheck, depth), hybrid.ErrNoLegalMoves
	}
	orderMovesByCaptureFirst(sh.Board(), acts)

	maximize := team == hybrid.White
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	var bestAct *hybrid.Action
	for i := range acts {
		score, err := e.child(sh, acts[i], depth, alpha, beta)
		if err != nil {
			return nil, 0, err
		}
		if maximize {
			if score > best {
				best, bestAct = score, &acts[i]
			}
			alpha = max(alpha, score)
		} else {
			if score < best {
				best, bestAct = score, &acts[i]
			}
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return bestAct, best, nil
}

// child applies a, scores the reply, and undoes a before any error is
// reported.
func (e *Engine) child(sh *hybrid.Shadow, a hybrid.Action, depth int, alpha, beta float64) (float64, error) {
	if err := sh.Apply(a); err != nil {
		return 0, fmt.Errorf("apply %s: %w", a, err)
	}
	score, err := e.alphaBeta(sh, a.Team.Opponent(), depth-1, alpha, beta)
	if uerr := sh.Undo(); uerr != nil {
		return 0, uerr
	}
	return score, err
}

func (e *Engine) alphaBeta(sh *hybrid.Shadow, team hybrid.Team, depth int, alpha, beta float64) (float64, error) {
	if err := e.tick(); err != nil {
		return 0, err
	}
	if depth <= 0 {
		return Evaluate(sh), nil
	}
	acts, inCheck := e.actions(sh, team, depth)
	if len(acts) == 0 {
		return terminalScore(team, inCheck, depth), nil
	}
	orderMovesByCaptureFirst(sh.Board(), acts)

	if team == hybrid.White {
		best := math.Inf(-1)
		for i := range acts {
			score, err := e.child(sh, acts[i], depth, alpha, beta)
			if err != nil {
				return 0, err
			}
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best, nil
	}
	best := math.Inf(1)
	for i := range acts {
		score, err := e.child(sh, acts[i], depth, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best, nil
}

// Search runs iterative deepening from the game's current position and
// returns the result of the deepest completed iteration. The first
// iteration always completes; later ones stop on cancellation, the time
// limit or the node limit and are discarded.
func (e *Engine) Search(ctx context.Context, g *hybrid.Game, cfg SearchConfig) (SearchResult, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultDepth
	}
	if cfg.DropHorizon != 0 {
		saved := e.dropHorizon
		e.dropHorizon = cfg.DropHorizon
		defer func() { e.dropHorizon = saved }()
	}
	start := time.Now()
	e.nodes = 0
	e.ctx = ctx
	e.nodeLimit = cfg.NodeLimit
	if cfg.TimeLimit > 0 {
		e.deadline = start.Add(cfg.TimeLimit)
	}
	defer e.resetLimits()

	sh := hybrid.NewShadow(g)
	team := g.CurrentTeam()
	var res SearchResult
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		e.bounded = depth > 1
		act, score, err := e.FindBestMove(sh, team, depth, -scoreInf, scoreInf)
		if errors.Is(err, errSearchAborted) {
			break
		}
		if errors.Is(err, hybrid.ErrNoLegalMoves) {
			res.Score = score
		}
		if err != nil {
			return res, err
		}
		a := *act
		res.Best, res.Score, res.Depth = &a, score, depth
		if score >= MateScore || score <= -MateScore {
			break
		}
		if ctx.Err() != nil || (!e.deadline.IsZero() && time.Now().After(e.deadline)) {
			break
		}
	}
	res.Nodes = e.nodes
	res.TimeUsed = time.Since(start)
	e.log.Debug().
		Str("team", team.String()).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Float64("score", res.Score).
		Dur("took", res.TimeUsed).
		Msg("search done")
	return res, nil
}

// TakeTurn searches for the side to move and plays the chosen action on g.
// On failure g is left unchanged and the error wraps ErrNoAction.
func (e *Engine) TakeTurn(ctx context.Context, g *hybrid.Game, cfg SearchConfig) (*hybrid.LastMove, SearchResult, error) {
	res, err := e.Search(ctx, g, cfg)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", ErrNoAction, err)
	}
	req, err := g.RequestFor(*res.Best)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", ErrNoAction, err)
	}
	lm, err := g.Perform(req)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", ErrNoAction, err)
	}
	return lm, res, nil
}

// orderMovesByCaptureFirst moves captures ahead of quiet actions in place.
func orderMovesByCaptureFirst(b *hybrid.Board, acts []hybrid.Action) {
	isCapture := func(a hybrid.Action) bool {
		return a.Type == hybrid.ActionMove && b.At(a.To) != nil
	}
	n := len(acts)
	for i := 0; i < n; i++ {
		if isCapture(acts[i]) {
			continue
		}
		for j := n - 1; j > i; j-- {
			if isCapture(acts[j]) {
				acts[i], acts[j] = acts[j], acts[i]
				break
			}
		}
	}
}
