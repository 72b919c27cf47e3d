package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"shogichess/internal/engine"
	"shogichess/internal/hybrid"
)

func main() {
	board := flag.String("board", "shogi", "board type: shogi or chess")
	blackLayout := flag.String("black", "shogi", "black layout")
	whiteLayout := flag.String("white", "shogi", "white layout")
	whiteDepth := flag.Int("white-depth", 2, "white search depth")
	blackDepth := flag.Int("black-depth", 2, "black search depth")
	moveTime := flag.Duration("move-time", 0, "time cap per move (0 = none)")
	games := flag.Int("games", 1, "number of games; sides swap every game")
	parallel := flag.Int("parallel", 1, "games played at once")
	maxPlies := flag.Int("max-plies", 200, "plies before a game is scored a draw")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	setup := hybrid.Setup{
		Board: hybrid.BoardType(*board),
		Black: hybrid.TeamSetup{PlayerID: "black", Layout: *blackLayout, Placeable: true},
		White: hybrid.TeamSetup{PlayerID: "white", Layout: *whiteLayout, Placeable: true},
	}
	if err := setup.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad setup")
	}

	a := player{Name: fmt.Sprintf("depth %d", *whiteDepth), Cfg: engine.SearchConfig{MaxDepth: *whiteDepth, TimeLimit: *moveTime}}
	b := player{Name: fmt.Sprintf("depth %d", *blackDepth), Cfg: engine.SearchConfig{MaxDepth: *blackDepth, TimeLimit: *moveTime}}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]outcome, *games)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, *parallel))
	for i := 0; i < *games; i++ {
		eg.Go(func() error {
			white, black := a, b
			if i%2 == 1 {
				white, black = b, a
			}
			gl := log.With().Int("game", i+1).Logger()
			res, err := playGame(ctx, gl, setup, white, black, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = outcome{res: res, swapped: i%2 == 1}
			gl.Info().Str("white", white.Name).Str("black", black.Name).
				Str("result", res.Kind.String()).Str("winner", res.Winner.String()).
				Str("reason", res.Reason).Msg("game over")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}

	s := tally(results)
	fmt.Printf("A (%s as white first): %d\n", a.Name, s.a)
	fmt.Printf("B (%s): %d\n", b.Name, s.b)
	fmt.Printf("Draws: %d\n", s.draws)
}
