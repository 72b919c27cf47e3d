package hybrid

// Offsets are written from Black's point of view: +dy is forward.
type offset struct{ dx, dy int }

var (
	kingSteps = []offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	orthogonal  = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonal    = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	forward     = []offset{{0, 1}}
	goldSteps   = []offset{{-1, 1}, {0, 1}, {1, 1}, {-1, 0}, {1, 0}, {0, -1}}
	silverSteps = []offset{{-1, 1}, {0, 1}, {1, 1}, {-1, -1}, {1, -1}}
	knightJumps = []offset{
		{-1, 2}, {1, 2}, {2, 1}, {2, -1},
		{1, -2}, {-1, -2}, {-2, -1}, {-2, 1},
	}
	shogiKnightJumps = []offset{{-1, 2}, {1, 2}}
	pillarJumps      = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {0, 2}, {2, 0}, {0, -2}, {-2, 0}}
	wispJumps        = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, {-2, -2}, {2, -2}, {-2, 2}, {2, 2}}
	jumperPromoted   = append(append([]offset{}, knightJumps...), orthogonal...)
)

// shape is a set of single steps plus a set of rays.
type shape struct {
	steps []offset
	rays  []offset
}

type kindRule struct {
	normal        shape
	promoted      shape
	bannedPromote bool
	immobileRow   int
	pawnLike      bool
	royal         bool
}

func (r *kindRule) shape(promoted bool) shape {
	if promoted && !r.bannedPromote {
		return r.promoted
	}
	return r.normal
}

// chess_pawn movement is generated by genChessPawn; its shapes here are only
// used for the promoted, non-rearranged form.
var rules = [NumKinds]kindRule{
	ShogiKing:    {normal: shape{steps: kingSteps}, bannedPromote: true, royal: true},
	ShogiRook:    {normal: shape{rays: orthogonal}, promoted: shape{steps: diagonal, rays: orthogonal}},
	ShogiBishop:  {normal: shape{rays: diagonal}, promoted: shape{steps: orthogonal, rays: diagonal}},
	ShogiGold:    {normal: shape{steps: goldSteps}, bannedPromote: true},
	ShogiSilver:  {normal: shape{steps: silverSteps}, promoted: shape{steps: goldSteps}},
	ShogiKnight:  {normal: shape{steps: shogiKnightJumps}, promoted: shape{steps: goldSteps}, immobileRow: 2},
	ShogiLance:   {normal: shape{rays: forward}, promoted: shape{steps: goldSteps}, immobileRow: 1},
	ShogiPawn:    {normal: shape{steps: forward}, promoted: shape{steps: goldSteps}, immobileRow: 1, pawnLike: true},
	ShogiJumper:  {normal: shape{steps: knightJumps}, promoted: shape{steps: jumperPromoted}},
	ShogiPhoenix: {normal: shape{rays: kingSteps}, promoted: shape{rays: kingSteps}},
	ChessKing:    {normal: shape{steps: kingSteps}, bannedPromote: true, royal: true},
	ChessQueen:   {normal: shape{rays: kingSteps}, bannedPromote: true},
	ChessRook:    {normal: shape{rays: orthogonal}, bannedPromote: true},
	ChessBishop:  {normal: shape{rays: diagonal}, bannedPromote: true},
	ChessKnight:  {normal: shape{steps: knightJumps}, bannedPromote: true},
	ChessPawn:    {promoted: shape{rays: kingSteps}, immobileRow: 1, pawnLike: true},
	ChessPillar:  {normal: shape{steps: pillarJumps}, bannedPromote: true},
	ChessWisp:    {normal: shape{steps: wispJumps}, bannedPromote: true},
	ChessLance:   {normal: shape{rays: forward}, promoted: shape{steps: kingSteps}, immobileRow: 1},
}

func ruleOf(k Kind) *kindRule {
	if !k.Valid() {
		return &rules[KindNone]
	}
	return &rules[k]
}

func isRoyal(k Kind) bool    { return ruleOf(k).royal }
func isPawnLike(k Kind) bool { return ruleOf(k).pawnLike }

// IsShogi reports whether the kind belongs to the shogi family.
func (k Kind) IsShogi() bool { return k >= ShogiKing && k <= ShogiPhoenix }

// NewPiece builds a piece with the per-kind defaults applied.
func NewPiece(id PieceID, kind Kind, team Team, promoteLine int, placeable bool) *Piece {
	r := ruleOf(kind)
	return &Piece{
		ID:            id,
		Kind:          kind,
		Team:          team,
		BannedPlace:   !placeable,
		BannedPromote: r.bannedPromote,
		PromoteLine:   promoteLine,
		ImmobileRow:   r.immobileRow,
	}
}
