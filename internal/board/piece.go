package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White   Color = 0
	Black   Color = 1
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece. Zero is reserved for
// "no piece" so it lines up with the low three bits of Piece.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if int(pt) >= len(chars) {
		return ' '
	}
	return chars[pt]
}

// PieceValue is the material value of each piece type in centipawns,
// indexed by PieceType (slot 0 unused).
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece is a 5-bit code: the low three bits are the PieceType (0 for an
// empty square), bit 3 marks white, bit 4 marks black. Color index is
// piece>>4, which is 0 for white (bit 3 only) and 1 for black.
type Piece uint8

const (
	whiteFlag Piece = 0b01000 // 8
	blackFlag Piece = 0b10000 // 16
)

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn) | whiteFlag
	WhiteKnight Piece = Piece(Knight) | whiteFlag
	WhiteBishop Piece = Piece(Bishop) | whiteFlag
	WhiteRook   Piece = Piece(Rook) | whiteFlag
	WhiteQueen  Piece = Piece(Queen) | whiteFlag
	WhiteKing   Piece = Piece(King) | whiteFlag
	BlackPawn   Piece = Piece(Pawn) | blackFlag
	BlackKnight Piece = Piece(Knight) | blackFlag
	BlackBishop Piece = Piece(Bishop) | blackFlag
	BlackRook   Piece = Piece(Rook) | blackFlag
	BlackQueen  Piece = Piece(Queen) | blackFlag
	BlackKing   Piece = Piece(King) | blackFlag
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	if c == Black {
		return Piece(pt) | blackFlag
	}
	return Piece(pt) | whiteFlag
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & 0x07)
}

// Color returns the Color of the piece. Undefined for NoPiece.
func (p Piece) Color() Color {
	return Color(p >> 4)
}

// IsEmpty reports whether the piece code represents an empty square.
func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	c := p.Type().Char()
	if p.Color() == White {
		return string(c - 32)
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
