package main

import (
	"context"

	"github.com/rs/zerolog"

	"shogichess/internal/engine"
	"shogichess/internal/hybrid"
)

type player struct {
	Name string
	Cfg  engine.SearchConfig
}

type outcome struct {
	res     hybrid.Result
	swapped bool // player A had black
}

type score struct{ a, b, draws int }

// playGame lets the engine play both sides until the game ends or maxPlies
// is reached, which counts as a draw.
func playGame(ctx context.Context, log zerolog.Logger, setup hybrid.Setup, white, black player, maxPlies int) (hybrid.Result, error) {
	g, err := hybrid.NewGame(setup)
	if err != nil {
		return hybrid.Result{}, err
	}
	e := engine.NewEngine(log)
	for ply := 0; ply < maxPlies; ply++ {
		if res := g.Result(); res.Kind != hybrid.Ongoing {
			return res, nil
		}
		cfg := white.Cfg
		if g.CurrentTeam() == hybrid.Black {
			cfg = black.Cfg
		}
		lm, sr, err := e.TakeTurn(ctx, g, cfg)
		if err != nil {
			return hybrid.Result{}, err
		}
		log.Debug().Int("step", g.Step()-1).
			Str("team", lm.Team.String()).
			Str("piece", lm.Kind.String()).
			Int("x", lm.To.X).Int("y", lm.To.Y).
			Float64("score", sr.Score).
			Int64("nodes", sr.Nodes).
			Msg("move")
	}
	if res := g.Result(); res.Kind != hybrid.Ongoing {
		return res, nil
	}
	return hybrid.Result{Kind: hybrid.Draw, Winner: hybrid.NoTeam, Reason: "move limit"}, nil
}

func tally(results []outcome) score {
	var s score
	for _, o := range results {
		if o.res.Kind != hybrid.Win {
			s.draws++
			continue
		}
		aWon := o.res.Winner == hybrid.White
		if o.swapped {
			aWon = !aWon
		}
		if aWon {
			s.a++
		} else {
			s.b++
		}
	}
	return s
}
