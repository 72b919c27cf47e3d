package hybrid

import "sort"

// Pool holds a team's captured pieces in ascending id order.
type Pool struct {
	pieces []*Piece
}

func NewPool() *Pool { return &Pool{} }

func (p *Pool) Add(pc *Piece) {
	i := sort.Search(len(p.pieces), func(i int) bool { return p.pieces[i].ID >= pc.ID })
	p.pieces = append(p.pieces, nil)
	copy(p.pieces[i+1:], p.pieces[i:])
	p.pieces[i] = pc
}

func (p *Pool) Remove(id PieceID) (*Piece, bool) {
	for i, pc := range p.pieces {
		if pc.ID == id {
			p.pieces = append(p.pieces[:i], p.pieces[i+1:]...)
			return pc, true
		}
	}
	return nil, false
}

func (p *Pool) ByID(id PieceID) *Piece {
	for _, pc := range p.pieces {
		if pc.ID == id {
			return pc
		}
	}
	return nil
}

// FirstOfKind returns the lowest-id piece of the kind, or nil.
func (p *Pool) FirstOfKind(k Kind) *Piece {
	for _, pc := range p.pieces {
		if pc.Kind == k {
			return pc
		}
	}
	return nil
}

func (p *Pool) Count(k Kind) int {
	n := 0
	for _, pc := range p.pieces {
		if pc.Kind == k {
			n++
		}
	}
	return n
}

// Counts returns the number of pieces per kind, indexed by Kind.
func (p *Pool) Counts() [NumKinds]int {
	var c [NumKinds]int
	for _, pc := range p.pieces {
		c[pc.Kind]++
	}
	return c
}

// Kinds lists the distinct kinds held, ordered by their lowest id.
func (p *Pool) Kinds() []Kind {
	var seen [NumKinds]bool
	var out []Kind
	for _, pc := range p.pieces {
		if !seen[pc.Kind] {
			seen[pc.Kind] = true
			out = append(out, pc.Kind)
		}
	}
	return out
}

func (p *Pool) Len() int { return len(p.pieces) }

// Pieces returns the held pieces; the slice is a copy, the pieces are not.
func (p *Pool) Pieces() []*Piece { return append([]*Piece(nil), p.pieces...) }

func (p *Pool) Clone() *Pool {
	c := &Pool{pieces: make([]*Piece, len(p.pieces))}
	for i, pc := range p.pieces {
		c.pieces[i] = pc.Clone()
	}
	return c
}

type Player struct {
	ID       string
	Team     Team
	Captured *Pool
}
