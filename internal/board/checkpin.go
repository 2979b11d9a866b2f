package board

// checkPinInfo is the result of calculateChecksAndPins: everything the
// move generator needs to know about the side-to-move king's safety
// before generating a single candidate move.
type checkPinInfo struct {
	checkers     Bitboard // enemy pieces currently giving check
	checkSquares Bitboard // squares a non-king piece could move to and resolve a single check
	pins         Bitboard // friendly pieces pinned to their own king
}

type rayDir struct {
	table    *[64]Bitboard
	positive bool
	diagonal bool
}

var rayDirs = [8]rayDir{
	{&rayN, true, false},
	{&rayNE, true, true},
	{&rayE, true, false},
	{&raySE, false, true},
	{&rayS, false, false},
	{&raySW, false, true},
	{&rayW, false, false},
	{&rayNW, true, true},
}

func isolateNearest(blockers Bitboard, positive bool) Square {
	if positive {
		return blockers.LSB()
	}
	return blockers.MSB()
}

// calculateChecksAndPins computes checkers, check-squares and pins for
// the side to move's king, walking all eight ray directions from the
// king square and isolating first/second blockers via LSB/MSB.
func (p *Position) calculateChecksAndPins() checkPinInfo {
	us := p.SideToMove()
	them := us.Other()
	k := p.kingSquare[us]

	var info checkPinInfo

	info.checkers = (pawnAttacks[us][k] & p.bb[them][Pawn]) |
		(knightAttacks[k] & p.bb[them][Knight]) |
		(kingAttacks[k] & p.bb[them][King])
	info.checkSquares = info.checkers

	for _, d := range rayDirs {
		ray := d.table[k]
		blockers := ray & p.allOcc
		if blockers == 0 {
			continue
		}
		first := isolateNearest(blockers, d.positive)
		firstBB := SquareBB(first)

		var sliders Bitboard
		if d.diagonal {
			sliders = p.bb[them][Bishop] | p.bb[them][Queen]
		} else {
			sliders = p.bb[them][Rook] | p.bb[them][Queen]
		}

		if firstBB&sliders != 0 {
			info.checkers |= firstBB
			info.checkSquares |= ray ^ d.table[first]
			continue
		}

		remaining := blockers &^ firstBB
		if remaining == 0 {
			continue
		}
		second := isolateNearest(remaining, d.positive)
		if SquareBB(second)&sliders != 0 && firstBB&(p.occ[us]) != 0 {
			info.pins |= firstBB
		}
	}

	return info
}
