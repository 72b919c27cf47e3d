package hybrid

import "fmt"

const (
	ShogiSize    = 9
	ChessSize    = 8
	MaxBoardSize = ShogiSize
)

func (p Position) Add(dx, dy int) Position { return Position{X: p.X + dx, Y: p.Y + dy} }

func (p Position) In(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Black starts on row 0 and advances along +y; White is mirrored.
func forwardY(team Team) int {
	if team == White {
		return -1
	}
	return +1
}

func orient(team Team, dx, dy int) (int, int) {
	if team == White {
		return dx, -dy
	}
	return dx, dy
}

// behindLine reports whether row y is still inside the team's own side of a
// line counted from the far edge.
func behindLine(team Team, size, y, line int) bool {
	if team == White {
		return y >= line
	}
	return y <= size-line-1
}

// CanPromote is the static promotion test: either endpoint lies in the
// promotion zone.
func CanPromote(team Team, fromY, toY, size, line int) bool {
	return !behindLine(team, size, fromY, line) || !behindLine(team, size, toY, line)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Board maps every square to a piece or nil. It enforces occupancy only;
// movement rules live elsewhere.
type Board struct {
	Size    int
	squares []*Piece
}

func NewBoard(size int) *Board {
	if size <= 0 || size > MaxBoardSize {
		panic(fmt.Sprintf("hybrid: board size %d out of range", size))
	}
	return &Board{Size: size, squares: make([]*Piece, size*size)}
}

func (b *Board) index(p Position) int { return p.Y*b.Size + p.X }

func (b *Board) At(p Position) *Piece {
	if !p.In(b.Size) {
		return nil
	}
	return b.squares[b.index(p)]
}

// Move relocates piece from one square to another and returns whatever
// occupied the destination.
func (b *Board) Move(piece *Piece, from, to Position) (*Piece, error) {
	if !to.In(b.Size) {
		return nil, fmt.Errorf("move to %v: %w", to, ErrIllegalAction)
	}
	cur := b.At(from)
	if cur == nil || piece == nil || cur.ID != piece.ID {
		return nil, fmt.Errorf("move from %v: %w", from, ErrInvalidPieceReference)
	}
	captured := b.squares[b.index(to)]
	b.squares[b.index(from)] = nil
	b.squares[b.index(to)] = cur
	return captured, nil
}

func (b *Board) Place(piece *Piece, p Position) error {
	if !p.In(b.Size) {
		return fmt.Errorf("place at %v: %w", p, ErrIllegalAction)
	}
	if b.squares[b.index(p)] != nil {
		return fmt.Errorf("place at %v: %w", p, ErrOccupiedTarget)
	}
	b.squares[b.index(p)] = piece
	return nil
}

// Capture empties the square and returns its previous occupant, if any.
func (b *Board) Capture(p Position) *Piece {
	if !p.In(b.Size) {
		return nil
	}
	pc := b.squares[b.index(p)]
	b.squares[b.index(p)] = nil
	return pc
}

func (b *Board) PieceByID(id PieceID) (*Piece, Position, bool) {
	for i, pc := range b.squares {
		if pc != nil && pc.ID == id {
			return pc, Position{X: i % b.Size, Y: i / b.Size}, true
		}
	}
	return nil, Position{}, false
}

// Each visits occupied squares in row-major (y, x) order.
func (b *Board) Each(fn func(at Position, pc *Piece)) {
	for i, pc := range b.squares {
		if pc != nil {
			fn(Position{X: i % b.Size, Y: i / b.Size}, pc)
		}
	}
}

func (b *Board) Count() int {
	n := 0
	for _, pc := range b.squares {
		if pc != nil {
			n++
		}
	}
	return n
}

// FindKing returns the square of the team's royal piece.
func (b *Board) FindKing(team Team) (Position, bool) {
	for i, pc := range b.squares {
		if pc != nil && pc.Team == team && isRoyal(pc.Kind) {
			return Position{X: i % b.Size, Y: i / b.Size}, true
		}
	}
	return Position{}, false
}

// Clone deep-copies every piece.
func (b *Board) Clone() *Board {
	c := &Board{Size: b.Size, squares: make([]*Piece, len(b.squares))}
	for i, pc := range b.squares {
		if pc != nil {
			c.squares[i] = pc.Clone()
		}
	}
	return c
}
