package hybrid

import (
	"fmt"
	"strings"
	"unicode"
)

// Diagrams are FEN-like: rows from y=0 separated by '/', digits compress
// empty squares, then " w" or " b" for the side to move. A piece is a
// letter, upper case for White; '^' marks the chess family and '+' a
// promoted piece, e.g. "+p" or "^Q".
var (
	shogiLetters = map[rune]Kind{
		'k': ShogiKing, 'r': ShogiRook, 'b': ShogiBishop, 'g': ShogiGold, 's': ShogiSilver,
		'n': ShogiKnight, 'l': ShogiLance, 'p': ShogiPawn, 'j': ShogiJumper, 'h': ShogiPhoenix,
	}
	chessLetters = map[rune]Kind{
		'k': ChessKing, 'q': ChessQueen, 'r': ChessRook, 'b': ChessBishop, 'n': ChessKnight,
		'p': ChessPawn, 'i': ChessPillar, 'w': ChessWisp, 'l': ChessLance,
	}
	kindLetters = func() [NumKinds]string {
		var out [NumKinds]string
		for r, k := range shogiLetters {
			out[k] = string(r)
		}
		for r, k := range chessLetters {
			out[k] = "^" + string(r)
		}
		return out
	}()
)

// DefaultPromoteLine is the promotion depth used for diagram pieces: the
// usual shogi zone for shogi pieces, the last row for chess pieces.
func DefaultPromoteLine(k Kind, size int) int {
	if !k.IsShogi() {
		return 1
	}
	if size == ChessSize {
		return 2
	}
	return 3
}

func pieceToken(pc *Piece) string {
	tok := kindLetters[pc.Kind]
	if pc.Team == White {
		tok = strings.ToUpper(tok)
	}
	if pc.Promoted {
		tok = "+" + tok
	}
	return tok
}

// EncodeDiagram renders the board and side to move.
func (g *Game) EncodeDiagram() string {
	var sb strings.Builder
	b := g.board
	for y := 0; y < b.Size; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < b.Size; x++ {
			pc := b.At(Position{X: x, Y: y})
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pieceToken(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	if g.CurrentTeam() == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	return sb.String()
}

// ParseDiagram builds a game from a diagram. Pieces are numbered in
// row-major order, may be dropped once captured, and get the default
// promotion line.
func ParseDiagram(s string) (*Game, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 || (parts[1] != "w" && parts[1] != "b") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDiagram, s)
	}
	rows := strings.Split(parts[0], "/")
	size := len(rows)
	if size != ShogiSize && size != ChessSize {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidDiagram, size)
	}
	b := NewBoard(size)
	var next PieceID
	for y, rowText := range rows {
		x := 0
		promoted, chess := false, false
		for _, ch := range rowText {
			switch {
			case ch >= '1' && ch <= '9':
				if promoted || chess {
					return nil, fmt.Errorf("%w: dangling marker in row %d", ErrInvalidDiagram, y)
				}
				x += int(ch - '0')
				continue
			case ch == '+':
				promoted = true
				continue
			case ch == '^':
				chess = true
				continue
			}
			letters := shogiLetters
			if chess {
				letters = chessLetters
			}
			kind, ok := letters[unicode.ToLower(ch)]
			if !ok || x >= size {
				return nil, fmt.Errorf("%w: bad piece %q in row %d", ErrInvalidDiagram, ch, y)
			}
			team := Black
			if unicode.IsUpper(ch) {
				team = White
			}
			pc := NewPiece(next, kind, team, DefaultPromoteLine(kind, size), true)
			pc.Promoted = promoted && !pc.BannedPromote
			if err := b.Place(pc, Position{X: x, Y: y}); err != nil {
				return nil, err
			}
			next++
			x++
			promoted, chess = false, false
		}
		if x != size {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidDiagram, y, x)
		}
	}
	g := NewGameFromBoard(b)
	if parts[1] == "b" {
		g.SetTurn(Black)
	}
	return g, nil
}
