package hybrid

import "fmt"

type RecordType int8

const (
	RecordMove RecordType = iota
	RecordPlace
)

// Record holds everything needed to reverse one applied action.
type Record struct {
	Type RecordType
	Team Team
	From Position // RecordMove only
	To   Position

	Captured      *Piece // snapshot of the piece taken on To
	PriorPromoted bool
	PriorLast     *Position

	Placed *Piece // RecordPlace: snapshot of the dropped piece while pooled

	Castle    *castleRecord
	EnPassant *enPassantRecord

	PriorLastMove *LastMove
	PriorHash     uint64
}

type castleRecord struct {
	RookFrom, RookTo Position
	RookPriorLast    *Position
}

type enPassantRecord struct {
	At     Position
	Victim *Piece // snapshot before capture
}

// position is the mutable state shared by the game and its shadows.
type position struct {
	board *Board
	pools [2]*Pool
	last  *LastMove
	hash  uint64
}

// toPool hands a captured piece to the captor: it changes team, loses its
// promotion and is no longer on its first move.
func (pos *position) toPool(captor Team, pc *Piece, at Position) {
	pool := pos.pools[captor]
	n := pool.Count(pc.Kind)
	pos.hash ^= pieceHashKey(pc, at)
	pc.Team = captor
	pc.Promoted = false
	lp := at
	pc.LastPosition = &lp
	pool.Add(pc)
	pos.hash ^= poolHashKey(captor, pc.Kind, n) ^ poolHashKey(captor, pc.Kind, n+1)
}

// applyMove validates against board occupancy and applies a move. Rule
// legality is the caller's concern.
func (pos *position) applyMove(team Team, from, to Position, promote bool) (Record, error) {
	b := pos.board
	pc := b.At(from)
	if pc == nil || pc.Team != team {
		return Record{}, fmt.Errorf("move from %v: %w", from, ErrInvalidPieceReference)
	}
	if !to.In(b.Size) {
		return Record{}, fmt.Errorf("move to %v: %w", to, ErrIllegalAction)
	}
	occ := b.At(to)
	if occ != nil && occ.Team == team {
		return Record{}, fmt.Errorf("move to %v: %w", to, ErrIllegalAction)
	}

	rec := Record{
		Type:          RecordMove,
		Team:          team,
		From:          from,
		To:            to,
		PriorPromoted: pc.Promoted,
		PriorLast:     pc.LastPosition,
		PriorLastMove: pos.last,
		PriorHash:     pos.hash,
	}

	if pc.Kind == ChessKing && pc.IsFirstMove() && to.Y == from.Y && abs(to.X-from.X) == 2 {
		dir := sign(to.X - from.X)
		if rookAt, ok := castlingRook(b, from, team, dir); ok {
			rook := b.At(rookAt)
			rec.Castle = &castleRecord{RookFrom: rookAt, RookTo: to.Add(-dir, 0), RookPriorLast: rook.LastPosition}
		}
	}
	if pc.Kind == ChessPawn && !pc.Promoted && occ == nil && to.X != from.X {
		if at, ok := enPassantVictim(b, team, to, pos.last); ok {
			rec.EnPassant = &enPassantRecord{At: at, Victim: b.At(at).Clone()}
		}
	}

	if occ != nil {
		rec.Captured = occ.Clone()
		b.Capture(to)
		pos.toPool(team, occ, to)
	}

	pos.hash ^= pieceHashKey(pc, from)
	if _, err := b.Move(pc, from, to); err != nil {
		return Record{}, err
	}
	lp := from
	pc.LastPosition = &lp
	if promote && pc.CanPromote(from.Y, to.Y, b.Size) {
		pc.Promoted = true
	}
	if pc.MustPromote(to.Y, b.Size) {
		pc.Promoted = true
	}
	pos.hash ^= pieceHashKey(pc, to)

	if c := rec.Castle; c != nil {
		rook := b.At(c.RookFrom)
		pos.hash ^= pieceHashKey(rook, c.RookFrom)
		if _, err := b.Move(rook, c.RookFrom, c.RookTo); err != nil {
			return Record{}, err
		}
		rf := c.RookFrom
		rook.LastPosition = &rf
		pos.hash ^= pieceHashKey(rook, c.RookTo)
	}
	if ep := rec.EnPassant; ep != nil {
		victim := b.Capture(ep.At)
		pos.toPool(team, victim, ep.At)
	}

	pf := from
	pos.last = &LastMove{ActionType: ActionMove, PieceID: pc.ID, Kind: pc.Kind, Team: team, From: &pf, To: to}
	return rec, nil
}

// applyPlace drops a pooled piece on an empty square.
func (pos *position) applyPlace(team Team, pc *Piece, to Position) (Record, error) {
	b := pos.board
	if !to.In(b.Size) {
		return Record{}, fmt.Errorf("place at %v: %w", to, ErrIllegalAction)
	}
	if b.At(to) != nil {
		return Record{}, fmt.Errorf("place at %v: %w", to, ErrOccupiedTarget)
	}
	pool := pos.pools[team]
	n := pool.Count(pc.Kind)
	if _, ok := pool.Remove(pc.ID); !ok {
		return Record{}, fmt.Errorf("place %s: %w", pc.ID, ErrInvalidPieceReference)
	}
	rec := Record{
		Type:          RecordPlace,
		Team:          team,
		To:            to,
		Placed:        pc.Clone(),
		PriorLastMove: pos.last,
		PriorHash:     pos.hash,
	}
	pc.Promoted = false
	pc.Rearranged = true
	lp := to
	pc.LastPosition = &lp
	if err := b.Place(pc, to); err != nil {
		*pc = *rec.Placed
		pool.Add(pc)
		return Record{}, err
	}
	pos.hash ^= poolHashKey(team, pc.Kind, n) ^ poolHashKey(team, pc.Kind, n-1)
	pos.hash ^= pieceHashKey(pc, to)
	pos.last = &LastMove{ActionType: ActionPlace, PieceID: pc.ID, Kind: pc.Kind, Team: team, To: to}
	return rec, nil
}

// undo reverses rec, which must be the most recently applied record.
func (pos *position) undo(rec Record) {
	b := pos.board
	switch rec.Type {
	case RecordMove:
		if ep := rec.EnPassant; ep != nil {
			victim, _ := pos.pools[rec.Team].Remove(ep.Victim.ID)
			*victim = *ep.Victim.Clone()
			_ = b.Place(victim, ep.At)
		}
		if c := rec.Castle; c != nil {
			rook := b.At(c.RookTo)
			_, _ = b.Move(rook, c.RookTo, c.RookFrom)
			rook.LastPosition = c.RookPriorLast
		}
		pc := b.At(rec.To)
		_, _ = b.Move(pc, rec.To, rec.From)
		pc.Promoted = rec.PriorPromoted
		pc.LastPosition = rec.PriorLast
		if rec.Captured != nil {
			taken, _ := pos.pools[rec.Team].Remove(rec.Captured.ID)
			*taken = *rec.Captured.Clone()
			_ = b.Place(taken, rec.To)
		}
	case RecordPlace:
		pc := b.Capture(rec.To)
		*pc = *rec.Placed.Clone()
		pos.pools[rec.Team].Add(pc)
	}
	pos.last = rec.PriorLastMove
	pos.hash = rec.PriorHash
}

// Shadow is a private copy of a game used for look-ahead. Every applied
// action pushes a record; Undo pops it and restores the prior state exactly.
type Shadow struct {
	position
	history []Record
}

func NewShadow(g *Game) *Shadow {
	initZobrist()
	s := &Shadow{position: position{
		board: g.board.Clone(),
		pools: [2]*Pool{White: g.white.Captured.Clone(), Black: g.black.Captured.Clone()},
		last:  g.lastMove.clone(),
	}}
	s.hash = CalculateHash(s.board, s.pools[White], s.pools[Black])
	return s
}

func (s *Shadow) Move(team Team, from, to Position, promote bool) error {
	rec, err := s.applyMove(team, from, to, promote)
	if err != nil {
		return err
	}
	s.history = append(s.history, rec)
	return nil
}

// Place drops the lowest-id pooled piece of kind.
func (s *Shadow) Place(team Team, kind Kind, to Position) error {
	pc := s.pools[team].FirstOfKind(kind)
	if pc == nil {
		return fmt.Errorf("place %s: %w", kind, ErrInvalidPieceReference)
	}
	if s.board.At(to) != nil {
		return fmt.Errorf("place at %v: %w", to, ErrOccupiedTarget)
	}
	if !CanPlace(pc, to, s.board) {
		return fmt.Errorf("place %s at %v: %w", kind, to, ErrIllegalAction)
	}
	rec, err := s.applyPlace(team, pc, to)
	if err != nil {
		return err
	}
	s.history = append(s.history, rec)
	return nil
}

func (s *Shadow) Apply(a Action) error {
	if a.Type == ActionPlace {
		return s.Place(a.Team, a.Kind, a.To)
	}
	return s.Move(a.Team, a.From, a.To, a.Promote)
}

func (s *Shadow) Undo() error {
	if len(s.history) == 0 {
		return ErrEmptyHistory
	}
	rec := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.undo(rec)
	return nil
}

func (s *Shadow) Depth() int { return len(s.history) }
func (s *Shadow) Board() *Board { return s.board }
func (s *Shadow) Pool(team Team) *Pool { return s.pools[team] }
func (s *Shadow) LastMove() *LastMove { return s.last }
func (s *Shadow) Hash() uint64 { return s.hash }
func (s *Shadow) CalculateHash() uint64 { return CalculateHash(s.board, s.pools[White], s.pools[Black]) }
