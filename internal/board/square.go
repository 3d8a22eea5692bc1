// Package board implements a bitboard-based chess position: piece
// placement, castling/en-passant/clock state, Zobrist hashing, pseudolegal
// move generation, and make/unmake.
package board

import "fmt"

// Square names a board square 0..63 under Little-Endian Rank-File Mapping:
// the low 3 bits are the file (a=0..h=7), the high 3 bits are the rank
// (1=0..8=7), so a1=0, h1=7, a8=56, h8=63.
type Square uint8

// NoSquare is the out-of-range sentinel returned wherever "no such square"
// needs representing (an empty en-passant field, Bitboard.LSB of zero, ...).
const NoSquare Square = 64

// fileOf/rankOf split a square into its 0-based file and rank without
// needing the named constants below at all; the constants exist purely for
// readability at call sites.
func fileOf(sq Square) int { return int(sq & 7) }
func rankOf(sq Square) int { return int(sq >> 3) }

// File returns the square's file, 0 (a) through 7 (h).
func (sq Square) File() int { return fileOf(sq) }

// Rank returns the square's rank, 0 (rank 1) through 7 (rank 8).
func (sq Square) Rank() int { return rankOf(sq) }

// NewSquare builds a Square from a 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// squareNames is built once at init so String() is a slice index rather
// than a fmt.Sprintf call on every invocation (String is called from perft
// debugging and UCI move printing, both potentially hot-ish loops).
var squareNames [65]string

func init() {
	for sq := Square(0); sq < NoSquare; sq++ {
		squareNames[sq] = string([]byte{'a' + byte(fileOf(sq)), '1' + byte(rankOf(sq))})
	}
	squareNames[NoSquare] = "-"
}

// String returns algebraic notation ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq > NoSquare {
		return "-"
	}
	return squareNames[sq]
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

// Mirror flips a square across the board's horizontal midline, turning a
// white-relative square into the corresponding black-relative one (used to
// share one piece-square table between both colors).
func (sq Square) Mirror() Square { return sq ^ 56 }

// Named squares. Declared as a single iota run across all 64 board squares
// in a1..h8 order so every other file can refer to e.g. board.E1 without
// spelling out NewSquare(4, 0).
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)
