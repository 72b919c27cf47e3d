package hybrid

// RepetitionLimit is the number of occurrences of one position that ends
// the game in a draw.
const RepetitionLimit = 4

type ResultKind int8

const (
	Ongoing ResultKind = iota
	Win                // by checkmate
	Draw               // stalemate or repetition
)

type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner Team       `json:"winner"`
	Reason string     `json:"reason,omitempty"`
}

func (k ResultKind) String() string {
	switch k {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

func (k ResultKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ResultKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "win":
		*k = Win
	case "draw":
		*k = Draw
	default:
		*k = Ongoing
	}
	return nil
}

// Game is the authoritative match state. It is not safe for concurrent use.
type Game struct {
	setup      Setup
	board      *Board
	white      *Player
	black      *Player
	step       int
	lastMove   *LastMove
	repetition map[uint64]int
}

// NewGame builds the starting position for setup. Black's pieces are
// numbered first.
func NewGame(setup Setup) (*Game, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	b := NewBoard(setup.Board.Size())
	next, err := populate(b, setup.Board, Black, setup.Black, 0)
	if err != nil {
		return nil, err
	}
	if _, err := populate(b, setup.Board, White, setup.White, next); err != nil {
		return nil, err
	}
	return newGame(setup, b), nil
}

// NewGameFromBoard wraps an arbitrary board, White to move.
func NewGameFromBoard(b *Board) *Game {
	return newGame(Setup{Board: boardTypeOf(b.Size)}, b)
}

func newGame(setup Setup, b *Board) *Game {
	initZobrist()
	g := &Game{
		setup:      setup,
		board:      b,
		white:      &Player{ID: setup.White.PlayerID, Team: White, Captured: NewPool()},
		black:      &Player{ID: setup.Black.PlayerID, Team: Black, Captured: NewPool()},
		step:       1,
		repetition: make(map[uint64]int),
	}
	return g
}

func boardTypeOf(size int) BoardType {
	if size == ChessSize {
		return ChessBoard
	}
	return ShogiBoard
}

func (g *Game) Setup() Setup { return g.setup }
func (g *Game) Board() *Board { return g.board }
func (g *Game) Step() int { return g.step }
func (g *Game) LastMove() *LastMove { return g.lastMove }
func (g *Game) Pool(team Team) *Pool { return g.Player(team).Captured }

func (g *Game) Player(team Team) *Player {
	if team == White {
		return g.white
	}
	return g.black
}

// CurrentTeam is White on odd steps and Black on even ones.
func (g *Game) CurrentTeam() Team {
	if g.step%2 == 1 {
		return White
	}
	return Black
}

// SetTurn forces the side to move; used to set up positions.
func (g *Game) SetTurn(team Team) {
	if g.CurrentTeam() != team {
		g.step++
	}
}

func (g *Game) Hash() uint64 {
	return CalculateHash(g.board, g.white.Captured, g.black.Captured)
}

func (g *Game) Repetitions() int {
	n := 0
	for _, c := range g.repetition {
		n = max(n, c)
	}
	return n
}

func (g *Game) live() *position {
	return &position{
		board: g.board,
		pools: [2]*Pool{White: g.white.Captured, Black: g.black.Captured},
		last:  g.lastMove,
	}
}

func (g *Game) nextTurn(last *LastMove) {
	g.lastMove = last
	g.repetition[g.Hash()]++
	g.step++
}

// Status reports the check state of the side to move.
func (g *Game) Status() CheckState {
	return NewShadow(g).Status(g.CurrentTeam())
}

// Result decides whether the game has ended.
func (g *Game) Result() Result {
	if g.Repetitions() >= RepetitionLimit {
		return Result{Kind: Draw, Winner: NoTeam, Reason: "repetition"}
	}
	team := g.CurrentTeam()
	switch NewShadow(g).Status(team) {
	case Checkmate:
		return Result{Kind: Win, Winner: team.Opponent(), Reason: "checkmate"}
	case Stalemate:
		return Result{Kind: Draw, Winner: NoTeam, Reason: "stalemate"}
	}
	return Result{Kind: Ongoing, Winner: NoTeam}
}
