package board

// GenerateLegalMoves returns every legal move for the side to move. It
// generates pseudo-legal candidates annotated with a legality-cache bit
// (per calculateChecksAndPins) and, for the handful that are not already
// proven legal, verifies them with a real MakeMove/UnmakeMove round trip.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()

	var legal MoveList
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if m.IsLegalCached() {
			legal.Add(m)
			continue
		}
		applied, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		p.UnmakeMove(applied)
		legal.Add(applied)
	}
	return &legal
}

// GeneratePseudoLegalMoves generates every move consistent with piece
// movement rules and the current check/pin state, following
// calculateChecksAndPins: double check restricts to king moves only,
// single check restricts non-king pieces to check_squares and excludes
// pinned pieces entirely, and the no-check branch generates full
// pseudo-legal moves with a legality-cache bit for anything not pinned.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	var ml MoveList
	us := p.SideToMove()
	info := p.calculateChecksAndPins()

	p.generateKingMoves(&ml, us, info)

	switch info.checkers.PopCount() {
	case 0:
		p.generateCastlingMoves(&ml, us)
		p.generatePawnMoves(&ml, us, info, Universe)
		p.generatePieceMoves(&ml, us, Knight, info, Universe)
		p.generatePieceMoves(&ml, us, Bishop, info, Universe)
		p.generatePieceMoves(&ml, us, Rook, info, Universe)
		p.generatePieceMoves(&ml, us, Queen, info, Universe)
	case 1:
		p.generatePawnMoves(&ml, us, info, info.checkSquares)
		p.generatePieceMoves(&ml, us, Knight, info, info.checkSquares)
		p.generatePieceMoves(&ml, us, Bishop, info, info.checkSquares)
		p.generatePieceMoves(&ml, us, Rook, info, info.checkSquares)
		p.generatePieceMoves(&ml, us, Queen, info, info.checkSquares)
	default:
		// double check: only the king may move
	}

	return &ml
}

// generateKingMoves generates the (always legal-candidate) king moves,
// excluding friendly occupancy and the squares behind the king along a
// slider's check ray, then fully validating each remaining candidate
// against the occupancy with the king removed (so a slider's ray isn't
// blocked by the very king it's checking).
func (p *Position) generateKingMoves(ml *MoveList, us Color, info checkPinInfo) {
	kingBB := p.bb[us][King]
	if kingBB == 0 {
		return
	}
	from := kingBB.LSB()
	them := us.Other()
	occNoKing := p.allOcc &^ SquareBB(from)

	dest := KingAttacks(from) &^ p.occ[us] &^ (info.checkSquares &^ info.checkers)
	for dest != 0 {
		to := dest.PopLSB()
		if p.AttackersByColor(to, them, occNoKing) != 0 {
			continue
		}
		ml.Add(NewMove(from, to).WithLegalCached(true))
	}
}

// generatePieceMoves generates knight/bishop/rook/queen moves for one
// piece type, intersecting destinations with allowedMask (Universe when
// not in check, check_squares when resolving a single check). Pinned
// pieces are skipped outright when in check; otherwise they are
// generated pseudo-legally without the legality-cache bit, so make-move
// performs the final king-safety check.
func (p *Position) generatePieceMoves(ml *MoveList, us Color, pt PieceType, info checkPinInfo, allowedMask Bitboard) {
	them := us.Other()
	pieces := p.bb[us][pt]
	inCheck := info.checkers != 0

	for pieces != 0 {
		from := pieces.PopLSB()
		pinned := info.pins&SquareBB(from) != 0
		if inCheck && pinned {
			continue
		}

		var attacks Bitboard
		switch pt {
		case Knight:
			attacks = KnightAttacks(from)
		case Bishop:
			attacks = BishopAttacks(from, p.allOcc)
		case Rook:
			attacks = RookAttacks(from, p.allOcc)
		case Queen:
			attacks = QueenAttacks(from, p.allOcc)
		}
		dest := attacks &^ p.occ[us] & allowedMask

		for dest != 0 {
			to := dest.PopLSB()
			_ = them
			ml.Add(NewMove(from, to).WithLegalCached(!pinned))
		}
	}
}

// generatePawnMoves generates pushes, captures, promotions, and
// en-passant for one side, intersecting non-en-passant targets with
// allowedMask.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, info checkPinInfo, allowedMask Bitboard) {
	them := us.Other()
	pawns := p.bb[us][Pawn]
	empty := ^p.allOcc
	enemies := p.occ[them]
	inCheck := info.checkers != 0

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	push1 &= allowedMask
	push2 &= allowedMask
	attackL &= allowedMask
	attackR &= allowedMask

	addPawnCandidate := func(from, to Square, promo bool) {
		pinned := info.pins&SquareBB(from) != 0
		if inCheck && pinned {
			return
		}
		if promo {
			addPromotionsCached(ml, from, to, !pinned)
			return
		}
		ml.Add(NewMove(from, to).WithLegalCached(!pinned))
	}

	nonPromo := push1 &^ promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir), to, false)
	}
	for push2 != 0 {
		to := push2.PopLSB()
		addPawnCandidate(Square(int(to)-2*pushDir), to, false)
	}

	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir+1), to, false)
	}
	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir-1), to, false)
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir), to, true)
	}
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir+1), to, true)
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPawnCandidate(Square(int(to)-pushDir-1), to, true)
	}

	ep := p.EnPassant()
	if ep == NoSquare {
		return
	}
	// En passant is permitted while in check only if the checker itself
	// is the pawn that just double-advanced.
	if inCheck {
		var victim Square
		if us == White {
			victim = ep - 8
		} else {
			victim = ep + 8
		}
		if info.checkers&SquareBB(victim) == 0 {
			return
		}
	}
	epBB := SquareBB(ep)
	var epAttackers Bitboard
	if us == White {
		epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
	} else {
		epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
	}
	for epAttackers != 0 {
		from := epAttackers.PopLSB()
		// En passant is never legality-cached: removing both the
		// moving pawn and its victim from the same rank can expose a
		// horizontal discovered check that calculateChecksAndPins,
		// built for single-piece pins, does not model.
		ml.Add(NewEnPassant(from, ep))
	}
}

func addPromotionsCached(ml *MoveList, from, to Square, cached bool) {
	ml.Add(NewPromotion(from, to, Queen).WithLegalCached(cached))
	ml.Add(NewPromotion(from, to, Rook).WithLegalCached(cached))
	ml.Add(NewPromotion(from, to, Bishop).WithLegalCached(cached))
	ml.Add(NewPromotion(from, to, Knight).WithLegalCached(cached))
}

// generateCastlingMoves generates castling candidates: legal-cache is
// never set here, since MakeMove always re-validates the transit squares
// before committing a castle (see castlingMoveIsLegal).
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	cr := p.CastlingRights()
	if us == White {
		if cr&WhiteKingSideCastle != 0 && p.allOcc&(SquareBB(F1)|SquareBB(G1)) == 0 {
			ml.Add(NewCastling(E1, G1))
		}
		if cr&WhiteQueenSideCastle != 0 && p.allOcc&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
			ml.Add(NewCastling(E1, C1))
		}
		return
	}
	if cr&BlackKingSideCastle != 0 && p.allOcc&(SquareBB(F8)|SquareBB(G8)) == 0 {
		ml.Add(NewCastling(E8, G8))
	}
	if cr&BlackQueenSideCastle != 0 && p.allOcc&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
		ml.Add(NewCastling(E8, C8))
	}
}

// castlingMoveIsLegal checks that the king isn't in check on its start,
// transit, or landing square — called by MakeMove before committing.
func (p *Position) castlingMoveIsLegal(m Move, us Color) bool {
	them := us.Other()
	from, to := m.From(), m.To()
	step := 1
	if to < from {
		step = -1
	}
	for sq := int(from); ; sq += step {
		if p.IsSquareAttacked(Square(sq), them) {
			return false
		}
		if Square(sq) == to {
			break
		}
	}
	return true
}

// PseudoDestinations returns the pseudo-legal destination bitboard for
// whatever piece sits on sq, ignoring pins and check — the same notion of
// "possible destinations" the training-data VLE move codec samples from.
// For a pawn, the en-passant square is included when reachable diagonally
// even though it's unoccupied; for a king, castling destinations are not
// included since callers add those separately.
func (p *Position) PseudoDestinations(sq Square) Bitboard {
	piece := p.mailbox[sq]
	if piece == NoPiece {
		return 0
	}
	us := piece.Color()
	them := us.Other()

	switch piece.Type() {
	case Pawn:
		bb := SquareBB(sq)
		empty := ^p.allOcc
		enemies := p.occ[them]
		var push1, push2, attacks Bitboard
		if us == White {
			push1 = bb.North() & empty
			push2 = (push1 & Rank3).North() & empty
			attacks = (bb.NorthWest() | bb.NorthEast()) & enemies
		} else {
			push1 = bb.South() & empty
			push2 = (push1 & Rank6).South() & empty
			attacks = (bb.SouthWest() | bb.SouthEast()) & enemies
		}
		dest := push1 | push2 | attacks
		if ep := p.EnPassant(); ep != NoSquare {
			var epAttacks Bitboard
			if us == White {
				epAttacks = bb.NorthWest() | bb.NorthEast()
			} else {
				epAttacks = bb.SouthWest() | bb.SouthEast()
			}
			if epAttacks&SquareBB(ep) != 0 {
				dest |= SquareBB(ep)
			}
		}
		return dest
	case Knight:
		return KnightAttacks(sq) &^ p.occ[us]
	case Bishop:
		return BishopAttacks(sq, p.allOcc) &^ p.occ[us]
	case Rook:
		return RookAttacks(sq, p.allOcc) &^ p.occ[us]
	case Queen:
		return QueenAttacks(sq, p.allOcc) &^ p.occ[us]
	case King:
		return KingAttacks(sq) &^ p.occ[us]
	}
	return 0
}

// IsLegalMove reports whether m is legal in p, without mutating p.
func (p *Position) IsLegalMove(m Move) bool {
	scratch := p.Copy()
	return scratch.GenerateLegalMoves().Contains(m)
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if m.IsLegalCached() {
			return true
		}
		applied, ok := p.MakeMove(m)
		if ok {
			p.UnmakeMove(applied)
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal replies.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has no legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
