package board

import "github.com/nullrook/chessplay/internal/config"

// IsFiftyMoveDraw reports whether the half-move clock has reached the
// fifty-move-rule threshold.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock() >= config.FiftyMoveHalfMoveLimit
}

// IsRepetitionDraw walks the metadata ring backwards from the current
// position, comparing the stored hash bits at every other ply (only
// same-side-to-move positions can repeat this one), up to the fifty-move
// counter's worth of reversible plies. It reports true once the current
// position's hash has recurred RepetitionCount-1 times before it.
func (p *Position) IsRepetitionDraw() bool {
	target := p.currentMeta().hashHigh48()
	limit := p.HalfMoveClock()
	occurrences := 1

	for back := 4; back <= limit && back <= p.halfmoveNumber; back += 2 {
		ply := p.halfmoveNumber - back
		if p.meta[ply%metadataRingLength].hashHigh48() == target {
			occurrences++
			if occurrences >= config.RepetitionCount {
				return true
			}
		}
	}
	return false
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate: no pawns, rooks, or queens on the board, and the
// combined count of minor pieces (both sides together) is at most one.
func (p *Position) IsInsufficientMaterial() bool {
	for _, c := range [2]Color{White, Black} {
		if p.PieceBB(c, Pawn) != 0 || p.PieceBB(c, Rook) != 0 || p.PieceBB(c, Queen) != 0 {
			return false
		}
	}
	minors := p.PieceBB(White, Knight).PopCount() + p.PieceBB(White, Bishop).PopCount() +
		p.PieceBB(Black, Knight).PopCount() + p.PieceBB(Black, Bishop).PopCount()
	return minors <= 1
}

// IsDraw reports whether the position is a draw by any of the rules this
// engine implements.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveDraw() || p.IsRepetitionDraw() || p.IsInsufficientMaterial()
}
