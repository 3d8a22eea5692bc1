package board

// Color is one of the two sides.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the color's opponent.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	if c == Black {
		return "Black"
	}
	return "NoColor"
}

// PieceType identifies a kind of piece irrespective of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

// pieceTypeChars indexes by PieceType to its lowercase FEN letter.
const pieceTypeChars = "pnbrqk"

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceTypeChars[pt]
}

// PieceValue is the material value of each piece type in centipawns,
// indexed by PieceType (the trailing slot covers NoPieceType).
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece is a colored piece packed as color*6+type, so Piece values for one
// color form a contiguous run and a table of size 12 (NoPiece=12) covers
// every real piece.
type Piece uint8

const NoPiece Piece = 12

// White pieces occupy 0..5, black pieces 6..11, matching color*6+type.
const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// NewPiece combines a type and color into a Piece, or NoPiece if either is
// out of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

// Type extracts the piece's kind.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color extracts the piece's side.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// pieceChars holds the FEN letter for each Piece value, white uppercase
// then black lowercase, matching the color*6+type encoding above.
const pieceChars = "PNBRQKpnbrqk"

// String returns the piece's FEN letter, uppercase for white.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string(pieceChars[p])
}

// pieceFromFENChar maps every legal FEN piece letter to its Piece.
var pieceFromFENChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// PieceFromChar converts a FEN piece letter to a Piece, or NoPiece if c
// isn't a recognized piece letter.
func PieceFromChar(c byte) Piece {
	if p, ok := pieceFromFENChar[c]; ok {
		return p
	}
	return NoPiece
}

// Value returns the piece's material value in centipawns.
func (p Piece) Value() int { return PieceValue[p.Type()] }
