package board

import "fmt"

// Move encodes a chess move in 16 bits, from square in the high bits down to
// the flag in the low bits:
//
//	bits 15..10: from square (0-63)
//	bits 9..4:   to square (0-63)
//	bits 3..0:   flag
//
// The flag distinguishes promotion piece and special-move kind in a single
// nibble rather than splitting promotion and flag into separate fields.
type Move uint16

// Move flags. KnightProm..QueenProm equal their PieceType value (Knight=1
// .. Queen=4), so Flag() IS the promoted PieceType directly for those four
// values — no offset needed.
const (
	FlagNull       uint16 = 0
	FlagKnightProm uint16 = 1
	FlagBishopProm uint16 = 2
	FlagRookProm   uint16 = 3
	FlagQueenProm  uint16 = 4
	FlagNormal     uint16 = 5
	FlagCastling   uint16 = 6
	FlagEnPassant  uint16 = 7
	FlagPawnTwoUp  uint16 = 8
)

const (
	moveFlagBits  = 4
	moveToShift   = moveFlagBits
	moveFromShift = moveFlagBits + 6
)

// NoMove is the null move: from=a1, to=a1, flag=Null. It never arises from
// legal play, so it is safe as a sentinel.
const NoMove Move = 0

func pack(from, to Square, flag uint16) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift | flag)
}

// NewMove creates a quiet or capturing non-special move.
func NewMove(from, to Square) Move {
	return pack(from, to, FlagNormal)
}

// NewPawnTwoUp creates a double pawn push (needed to set the en passant
// target square on make).
func NewPawnTwoUp(from, to Square) Move {
	return pack(from, to, FlagPawnTwoUp)
}

// NewPromotion creates a promotion move. promo must be Knight, Bishop, Rook
// or Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return pack(from, to, uint16(promo))
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return pack(from, to, FlagEnPassant)
}

// NewCastling creates a castling move, encoded as the king's own from/to
// squares (e.g. e1g1 for white kingside), matching UCI notation.
func NewCastling(from, to Square) Move {
	return pack(from, to, FlagCastling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m >> moveFromShift)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & 0x3F)
}

// Flag returns the move's flag nibble.
func (m Move) Flag() uint16 {
	return uint16(m) & 0xF
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	f := m.Flag()
	return f >= FlagKnightProm && f <= FlagQueenProm
}

// Promotion returns the promoted piece type. Only valid if IsPromotion.
func (m Move) Promotion() PieceType {
	return PieceType(m.Flag())
}

// IsCastling reports whether this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant reports whether this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsPawnTwoUp reports whether this is a double pawn push.
func (m Move) IsPawnTwoUp() bool {
	return m.Flag() == FlagPawnTwoUp
}

// IsNull reports whether this is the null move.
func (m Move) IsNull() bool {
	return m == NoMove
}

// IsCapture reports whether the move removes an enemy piece from the board,
// given the position it is about to be played in.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

var promoChars = [5]byte{0, 'n', 'b', 'r', 'q'}

// String returns the UCI text of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(promoChars[m.Flag()])
	}
	return s
}

// ParseMove parses UCI move text against pos, recovering the special-move
// flag (castling, en passant, double push) from board state the UCI wire
// format itself doesn't carry.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if pt == Pawn && to == pos.EnPassant && to != NoSquare {
		return NewEnPassant(from, to), nil
	}
	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		return NewPawnTwoUp(from, to), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer: adding moves never grows or
// reallocates it (each list itself is allocated once, by NewMoveList).
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves held.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap exchanges two entries.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing the backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// UndoInfo holds everything Position.UnmakeMove needs to reverse one
// MakeMove call. SearchContext keeps a fixed-capacity stack of these (see
// internal/search) rather than letting it grow on the heap move by move.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	Checkers       Bitboard
}
