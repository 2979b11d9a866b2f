package board

import "fmt"

// Move is a 32-bit packed move:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-14 promotion piece type (Knight..Queen), zero if not promoting
//	bit 15     promotion flag
//	bit 16     en-passant flag
//	bit 17     castle flag
//	bit 18     legality-cached flag (already proven legal by the generator)
//	bits 19-23 captured piece code, filled by MakeMove and consumed by UnmakeMove
//	bits 24-31 reserved
//
// Equal (and MoveList.Contains) only compares bits 0-17: the
// captured-piece and legality-cache bits are per-application bookkeeping,
// not part of the move's identity.
type Move uint32

const (
	moveFromMask   = 0x3F
	moveToShift    = 6
	moveToMask     = 0x3F
	movePromoShift = 12
	movePromoMask  = 0x7
	movePromoFlag  = 1 << 15
	moveEPFlag     = 1 << 16
	moveCastleFlag = 1 << 17
	moveLegalFlag  = 1 << 18
	moveCapShift   = 19
	moveCapMask    = 0x1F

	moveIdentityMask = 1<<18 - 1 // bits 0-17
)

// NoMove is the zero value, an otherwise-impossible a1a1 quiet move.
const NoMove Move = 0

// NewMove builds a quiet or ordinary-capture move; the captured piece is
// filled in later by MakeMove, not by the generator.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<moveToShift
}

// NewPromotion builds a promotion move to the given piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo)<<movePromoShift | movePromoFlag
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | moveEPFlag
}

// NewCastling builds a castling move; to is the king's own landing square.
func NewCastling(from, to Square) Move {
	return NewMove(from, to) | moveCastleFlag
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & moveFromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveToMask)
}

// Promotion returns the promotion piece type, or NoPieceType if not a promotion.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return PieceType((m >> movePromoShift) & movePromoMask)
}

// IsPromotion reports whether the move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m&movePromoFlag != 0
}

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m&moveEPFlag != 0
}

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool {
	return m&moveCastleFlag != 0
}

// IsLegalCached reports whether the generator already proved this move legal.
func (m Move) IsLegalCached() bool {
	return m&moveLegalFlag != 0
}

// WithLegalCached returns m with the legality-cached bit set or cleared.
func (m Move) WithLegalCached(v bool) Move {
	if v {
		return m | moveLegalFlag
	}
	return m &^ moveLegalFlag
}

// CapturedPiece returns the piece captured by this application of the
// move, as stashed by MakeMove. Meaningless before the move is made.
func (m Move) CapturedPiece() Piece {
	return Piece((m >> moveCapShift) & moveCapMask)
}

// WithCapturedPiece returns m with the captured-piece slot set.
func (m Move) WithCapturedPiece(p Piece) Move {
	return (m &^ (moveCapMask << moveCapShift)) | Move(p)<<moveCapShift
}

// IsCapture reports whether this move is a capture. En passant is always
// a capture; an ordinary move only once its captured-piece slot has been
// populated by MakeMove.
func (m Move) IsCapture() bool {
	return m.IsEnPassant() || m.CapturedPiece() != NoPiece
}

// Equal compares two moves on their identity bits only (from, to,
// promotion, en-passant, castle), ignoring the legal-cache and
// captured-piece bookkeeping bits.
func (m Move) Equal(other Move) bool {
	return m&moveIdentityMask == other&moveIdentityMask
}

// String renders the move in long algebraic notation.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses bare long algebraic notation (from, to, optional
// promotion letter) with no en-passant/castle flag set — the position
// applying the move classifies those via GenerateLegalMoves lookup.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("board: invalid long algebraic move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid long algebraic move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid long algebraic move %q: %w", s, err)
	}
	if len(s) == 5 {
		var pt PieceType
		switch s[4] {
		case 'n':
			pt = Knight
		case 'b':
			pt = Bishop
		case 'r':
			pt = Rook
		case 'q':
			pt = Queen
		default:
			return NoMove, fmt.Errorf("board: invalid promotion letter in %q", s)
		}
		return NewPromotion(from, to, pt), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity, allocation-free list of moves: the
// generator never needs more than a few hundred and appends are on the
// hot path, so a plain array beats a growable slice here.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move to the list.
func (l *MoveList) Add(m Move) {
	l.moves[l.count] = m
	l.count++
}

// Len returns the number of moves in the list.
func (l *MoveList) Len() int {
	return l.count
}

// Get returns the move at index i.
func (l *MoveList) Get(i int) Move {
	return l.moves[i]
}

// Set overwrites the move at index i.
func (l *MoveList) Set(i int, m Move) {
	l.moves[i] = m
}

// Swap swaps two moves in the list.
func (l *MoveList) Swap(i, j int) {
	l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
}

// Clear empties the list without releasing its backing array.
func (l *MoveList) Clear() {
	l.count = 0
}

// Contains reports whether a move with matching identity bits is present.
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.count; i++ {
		if l.moves[i].Equal(m) {
			return true
		}
	}
	return false
}

// Slice returns the moves as a plain slice.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.count]
}
