package hybrid

import (
	"fmt"
	"strings"
)

type Team int8

const (
	NoTeam Team = -1
	White  Team = 0 // moves first, on odd steps
	Black  Team = 1
)

func (t Team) Opponent() Team {
	switch t {
	case White:
		return Black
	case Black:
		return White
	}
	return NoTeam
}

func (t Team) String() string {
	switch t {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(s) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "none", "":
		return NoTeam, nil
	}
	return NoTeam, fmt.Errorf("unknown team %q", s)
}

func (t Team) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Kind int8

const (
	KindNone Kind = iota
	ShogiKing
	ShogiRook
	ShogiBishop
	ShogiGold
	ShogiSilver
	ShogiKnight
	ShogiLance
	ShogiPawn
	ShogiJumper
	ShogiPhoenix
	ChessKing
	ChessQueen
	ChessRook
	ChessBishop
	ChessKnight
	ChessPawn
	ChessPillar
	ChessWisp
	ChessLance

	NumKinds = int(ChessLance) + 1
)

var kindNames = [NumKinds]string{
	KindNone:     "none",
	ShogiKing:    "shogi_king",
	ShogiRook:    "shogi_rook",
	ShogiBishop:  "shogi_bishop",
	ShogiGold:    "shogi_gold",
	ShogiSilver:  "shogi_silver",
	ShogiKnight:  "shogi_knight",
	ShogiLance:   "shogi_lance",
	ShogiPawn:    "shogi_pawn",
	ShogiJumper:  "shogi_jumper",
	ShogiPhoenix: "shogi_phoenix",
	ChessKing:    "chess_king",
	ChessQueen:   "chess_queen",
	ChessRook:    "chess_rook",
	ChessBishop:  "chess_bishop",
	ChessKnight:  "chess_knight",
	ChessPawn:    "chess_pawn",
	ChessPillar:  "chess_pillar",
	ChessWisp:    "chess_wisp",
	ChessLance:   "chess_lance",
}

func (k Kind) Valid() bool { return k > KindNone && int(k) < NumKinds }

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	for k := ShogiKing; int(k) < NumKinds; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown piece kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// PieceID is rendered as bijective base-26 letters: a..z, aa, ab, ...
type PieceID int

func (id PieceID) String() string {
	if id < 0 {
		return "?"
	}
	var buf [8]byte
	i := len(buf)
	n := int(id)
	for {
		i--
		buf[i] = byte('a' + n%26)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf[i:])
}

func ParsePieceID(s string) (PieceID, error) {
	if s == "" || len(s) > 6 {
		return -1, fmt.Errorf("invalid piece id %q", s)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return -1, fmt.Errorf("invalid piece id %q", s)
		}
		n = n*26 + int(c-'a') + 1
	}
	return PieceID(n - 1), nil
}

func (id PieceID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PieceID) UnmarshalText(b []byte) error {
	v, err := ParsePieceID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Piece carries the mutable per-piece state. Its square is the board key,
// not a field.
type Piece struct {
	ID            PieceID   `json:"id"`
	Kind          Kind      `json:"kind"`
	Team          Team      `json:"team"`
	Promoted      bool      `json:"promoted"`
	BannedPlace   bool      `json:"banned_place"`
	BannedPromote bool      `json:"banned_promote"`
	PromoteLine   int       `json:"promote_line"`
	ImmobileRow   int       `json:"immobile_row,omitempty"`
	Rearranged    bool      `json:"rearranged"`
	LastPosition  *Position `json:"last_position,omitempty"`
}

func (p *Piece) IsFirstMove() bool { return p.LastPosition == nil }

func (p *Piece) Clone() *Piece {
	c := *p
	if p.LastPosition != nil {
		lp := *p.LastPosition
		c.LastPosition = &lp
	}
	return &c
}

// CanPromote reports whether a move between the two rows may promote.
func (p *Piece) CanPromote(fromY, toY, size int) bool {
	if p.BannedPromote || p.Promoted {
		return false
	}
	return CanPromote(p.Team, fromY, toY, size, p.PromoteLine)
}

// MustPromote reports whether landing on row toY forces promotion.
func (p *Piece) MustPromote(toY, size int) bool {
	if p.ImmobileRow <= 0 || p.Promoted || p.BannedPromote {
		return false
	}
	return !behindLine(p.Team, size, toY, p.ImmobileRow)
}

type ActionType int8

const (
	ActionMove ActionType = iota
	ActionPlace
)

func (a ActionType) String() string {
	if a == ActionPlace {
		return "place"
	}
	return "move"
}

func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "move":
		return ActionMove, nil
	case "place":
		return ActionPlace, nil
	}
	return ActionMove, fmt.Errorf("unknown action type %q", s)
}

func (a ActionType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ActionType) UnmarshalText(b []byte) error {
	v, err := ParseActionType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Action is a candidate produced by move generation. For ActionPlace only
// Kind and To are meaningful; From is zero.
type Action struct {
	Type    ActionType
	Team    Team
	Kind    Kind
	From    Position
	To      Position
	Promote bool
}

func (a Action) String() string {
	var sb strings.Builder
	if a.Type == ActionPlace {
		fmt.Fprintf(&sb, "%s*%d,%d", a.Kind, a.To.X, a.To.Y)
	} else {
		fmt.Fprintf(&sb, "%s %d,%d-%d,%d", a.Kind, a.From.X, a.From.Y, a.To.X, a.To.Y)
	}
	if a.Promote {
		sb.WriteByte('+')
	}
	return sb.String()
}

// LastMove is the record of the most recently applied action.
type LastMove struct {
	ActionType ActionType `json:"action_type"`
	PieceID    PieceID    `json:"piece_id"`
	Kind       Kind       `json:"piece_name"`
	Team       Team       `json:"team"`
	From       *Position  `json:"from,omitempty"`
	To         Position   `json:"to"`
}

func (m *LastMove) clone() *LastMove {
	if m == nil {
		return nil
	}
	c := *m
	if m.From != nil {
		f := *m.From
		c.From = &f
	}
	return &c
}
