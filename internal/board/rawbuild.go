package board

import "fmt"

// PositionBuilder assembles a Position piece by piece for decoders that
// reconstruct positions from a non-FEN encoding, such as the training-data
// binpack stem format, where pieces, castling rights, and the en-passant
// square all arrive one occupied square at a time rather than as FEN text.
type PositionBuilder struct {
	pos *Position
}

// NewPositionBuilder starts an empty position under construction.
func NewPositionBuilder() *PositionBuilder {
	pos := &Position{}
	pos.kingSquare[White] = NoSquare
	pos.kingSquare[Black] = NoSquare
	return &PositionBuilder{pos: pos}
}

// SetPiece places a piece on an empty square.
func (b *PositionBuilder) SetPiece(piece Piece, sq Square) {
	b.pos.setPiece(piece, sq)
}

// Build finalizes the position at the given ply, seeding its metadata ring
// slot with a freshly computed Zobrist hash, and returns it after running
// the usual post-load invariant checks and checker computation.
func (b *PositionBuilder) Build(sideToMove Color, cr CastlingRights, ep Square, halfmoveNumber, halfmoveClock int) (*Position, error) {
	pos := b.pos
	if pos.kingSquare[White] == NoSquare || pos.kingSquare[Black] == NoSquare {
		return nil, fmt.Errorf("board: position must place exactly one king per side")
	}
	pos.halfmoveNumber = halfmoveNumber
	hash := pos.computeHash(sideToMove, cr, ep)
	pos.meta[halfmoveNumber%metadataRingLength] = packMetadata(halfmoveClock, ep, cr, hash)
	pos.UpdateCheckers()
	return pos, nil
}
