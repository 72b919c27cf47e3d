package hybrid

import "sync"

const (
	zobristSquares = MaxBoardSize * MaxBoardSize
	zobristPool    = 2 * MaxBoardSize * MaxBoardSize // upper bound on copies of one kind in a pool
)

var (
	zobristOnce sync.Once

	zobristPieces [2][NumKinds][2][zobristSquares]uint64
	zobristPools  [2][NumKinds][zobristPool + 1]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for team := 0; team < 2; team++ {
			for k := 1; k < NumKinds; k++ {
				for prom := 0; prom < 2; prom++ {
					for sq := 0; sq < zobristSquares; sq++ {
						zobristPieces[team][k][prom][sq] = next()
					}
				}
				// count 0 hashes to zero so empty pools contribute nothing
				for n := 1; n <= zobristPool; n++ {
					zobristPools[team][k][n] = next()
				}
			}
		}
	})
}

func pieceHashKey(pc *Piece, at Position) uint64 {
	if pc == nil || (pc.Team != White && pc.Team != Black) || !pc.Kind.Valid() {
		return 0
	}
	prom := 0
	if pc.Promoted {
		prom = 1
	}
	return zobristPieces[pc.Team][pc.Kind][prom][at.Y*MaxBoardSize+at.X]
}

func poolHashKey(team Team, k Kind, n int) uint64 {
	if (team != White && team != Black) || !k.Valid() || n <= 0 || n > zobristPool {
		return 0
	}
	return zobristPools[team][k][n]
}

// CalculateHash computes the Zobrist hash of a board plus both pools from
// scratch. The side to move is not part of the key.
func CalculateHash(b *Board, white, black *Pool) uint64 {
	initZobrist()

	var h uint64
	b.Each(func(at Position, pc *Piece) {
		h ^= pieceHashKey(pc, at)
	})
	for team, pool := range [2]*Pool{White: white, Black: black} {
		counts := pool.Counts()
		for k, n := range counts {
			h ^= poolHashKey(Team(team), Kind(k), n)
		}
	}
	return h
}
