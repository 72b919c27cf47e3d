package main

import (
	"flag"
	"fmt"
	"os"

	"shogichess/internal/hybrid"
)

func main() {
	board := flag.String("board", "shogi", "board type: shogi or chess")
	blackLayout := flag.String("black", "shogi", "black layout")
	whiteLayout := flag.String("white", "shogi", "white layout")
	diagram := flag.String("diagram", "", "start from a diagram instead of a setup")
	flag.Parse()

	var (
		g   *hybrid.Game
		err error
	)
	if *diagram != "" {
		g, err = hybrid.ParseDiagram(*diagram)
	} else {
		g, err = hybrid.NewGame(hybrid.Setup{
			Board: hybrid.BoardType(*board),
			Black: hybrid.TeamSetup{Layout: *blackLayout, Placeable: true},
			White: hybrid.TeamSetup{Layout: *whiteLayout, Placeable: true},
		})
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	team := g.CurrentTeam()
	fmt.Println("Diagram:", g.EncodeDiagram())
	fmt.Printf("Hash: %016x\n", g.Hash())
	fmt.Println("Status:", g.Status())
	acts := hybrid.NewShadow(g).LegalActions(team)
	fmt.Printf("Legal actions for %s: %d\n", team, len(acts))
	for _, a := range acts {
		fmt.Println(" ", a)
	}
}
