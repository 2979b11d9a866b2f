package board

// castlingRookSquares returns the rook's start and landing squares for a
// castling move given the king's own from/to squares.
func castlingRookSquares(from, to Square) (rookFrom, rookTo Square) {
	if to > from {
		return from + 3, from + 1
	}
	return from - 4, from - 1
}

// applyMutation performs the mailbox/bitboard edits for one move,
// returning whatever piece was captured (the en-passant victim for an
// en-passant move, NoPiece for castling). It never touches the metadata
// ring, halfmove number, or hash — MakeMove and UnmakeMove handle
// those.
func (p *Position) applyMutation(m Move, us Color) Piece {
	from, to := m.From(), m.To()
	switch {
	case m.IsCastling():
		p.movePiece(from, to)
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(rookFrom, rookTo)
		return NoPiece
	case m.IsEnPassant():
		var victim Square
		if us == White {
			victim = to - 8
		} else {
			victim = to + 8
		}
		captured := p.removePiece(victim)
		p.movePiece(from, to)
		return captured
	default:
		captured := p.removePiece(to)
		p.movePiece(from, to)
		if m.IsPromotion() {
			p.removePiece(to)
			p.setPiece(NewPiece(m.Promotion(), us), to)
		}
		return captured
	}
}

// revertMutation is the exact inverse of applyMutation.
func (p *Position) revertMutation(m Move, us Color, captured Piece) {
	from, to := m.From(), m.To()
	switch {
	case m.IsCastling():
		p.movePiece(to, from)
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(rookTo, rookFrom)
	case m.IsEnPassant():
		p.movePiece(to, from)
		var victim Square
		if us == White {
			victim = to - 8
		} else {
			victim = to + 8
		}
		p.setPiece(captured, victim)
	default:
		if m.IsPromotion() {
			p.removePiece(to)
			p.setPiece(NewPiece(Pawn, us), from)
		} else {
			p.movePiece(to, from)
		}
		if captured != NoPiece {
			p.setPiece(captured, to)
		}
	}
}

// revokedCastlingRights returns the rights lost as a side effect of this
// move: the mover's own rights if it was a king or a rook leaving its
// home corner, and the opponent's right if their rook was captured on
// its home corner.
func revokedCastlingRights(mover, captured Piece, from, to Square) CastlingRights {
	var revoked CastlingRights
	switch mover.Type() {
	case King:
		if mover.Color() == White {
			revoked |= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			revoked |= BlackKingSideCastle | BlackQueenSideCastle
		}
	case Rook:
		revoked |= cornerCastlingRight(from)
	}
	if captured.Type() == Rook {
		revoked |= cornerCastlingRight(to)
	}
	return revoked
}

func cornerCastlingRight(sq Square) CastlingRights {
	switch sq {
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return NoCastling
	}
}

// MakeMove applies m to the position. On success it returns the move
// annotated with its captured piece and a set legality-cache bit (ready
// to be passed back to UnmakeMove); on failure — a castle whose path is
// attacked, or any other move that leaves the mover's own king in check —
// the position is left byte-identical to how it was and ok is false.
func (p *Position) MakeMove(m Move) (Move, bool) {
	us := p.SideToMove()
	them := us.Other()
	from, to := m.From(), m.To()
	mover := p.mailbox[from]

	cur := p.currentMeta()
	oldCr := cur.castlingRights()
	oldEp := cur.enPassant()

	newHash := cur.hashHigh48()
	if oldEp != NoSquare {
		newHash ^= ZobristEnPassant(oldEp.File())
	}
	newHash ^= ZobristSideToMove()
	newClock := cur.halfmoveClock() + 1
	newEp := NoSquare

	if m.IsCastling() {
		if !p.castlingMoveIsLegal(m, us) {
			return m, false
		}
	}

	captured := p.applyMutation(m, us)

	switch {
	case m.IsCastling():
		newHash ^= ZobristPiece(us, King, from) ^ ZobristPiece(us, King, to)
		rookFrom, rookTo := castlingRookSquares(from, to)
		newHash ^= ZobristPiece(us, Rook, rookFrom) ^ ZobristPiece(us, Rook, rookTo)
	case m.IsEnPassant():
		var victim Square
		if us == White {
			victim = to - 8
		} else {
			victim = to + 8
		}
		newHash ^= ZobristPiece(them, Pawn, victim)
		newHash ^= ZobristPiece(us, Pawn, from) ^ ZobristPiece(us, Pawn, to)
		newClock = 0
	case m.IsPromotion():
		if captured != NoPiece {
			newHash ^= ZobristPiece(captured.Color(), captured.Type(), to)
		}
		newHash ^= ZobristPiece(us, Pawn, from) ^ ZobristPiece(us, m.Promotion(), to)
		newClock = 0
	default:
		if captured != NoPiece {
			newHash ^= ZobristPiece(captured.Color(), captured.Type(), to)
			newClock = 0
		}
		newHash ^= ZobristPiece(us, mover.Type(), from) ^ ZobristPiece(us, mover.Type(), to)
		if mover.Type() == Pawn {
			newClock = 0
			if diff := int(to) - int(from); diff == 16 || diff == -16 {
				newEp = Square((int(from) + int(to)) / 2)
				newHash ^= ZobristEnPassant(newEp.File())
			}
		}
	}

	if !m.IsLegalCached() {
		if p.AttackersByColor(p.kingSquare[us], them, p.allOcc) != 0 {
			p.revertMutation(m, us, captured)
			return m, false
		}
	}

	finalCr := oldCr &^ revokedCastlingRights(mover, captured, from, to)
	newHash ^= ZobristCastling(oldCr) ^ ZobristCastling(finalCr)

	p.halfmoveNumber++
	p.meta[p.halfmoveNumber%metadataRingLength] = packMetadata(newClock, newEp, finalCr, newHash)
	p.UpdateCheckers()

	return m.WithCapturedPiece(captured).WithLegalCached(true), true
}

// UnmakeMove reverts a move previously applied by MakeMove, restoring
// the mailbox, bitboards, halfmove number, and active metadata slot to
// their exact pre-move values.
func (p *Position) UnmakeMove(m Move) {
	us := p.SideToMove().Other()
	captured := m.CapturedPiece()
	p.revertMutation(m, us, captured)
	p.halfmoveNumber--
	p.UpdateCheckers()
}
