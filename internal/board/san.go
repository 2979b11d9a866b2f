package board

import (
	"fmt"
	"strings"
)

// isCaptureOf reports whether m, before being applied to pos, captures a
// piece — an ordinary capture or an en-passant one.
func isCaptureOf(pos *Position, m Move) bool {
	return m.IsEnPassant() || pos.PieceAt(m.To()) != NoPiece
}

// ToSAN converts a move to Standard Algebraic Notation, as legal in pos.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)

	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			return sanWithSuffix(pos, m, "O-O")
		}
		return sanWithSuffix(pos, m, "O-O-O")
	}

	pt := piece.Type()

	if pt != Pawn {
		sb.WriteByte(" PNBRQK"[pt])
		sb.WriteString(getDisambiguation(pos, m, pt))
	}

	if isCaptureOf(pos, m) {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(" PNBRQK"[m.Promotion()])
	}

	return sanWithSuffix(pos, m, sb.String())
}

// sanWithSuffix appends the check/checkmate marker after applying m to a
// scratch copy of pos.
func sanWithSuffix(pos *Position, m Move, san string) string {
	scratch := pos.Copy()
	if _, ok := scratch.MakeMove(m); !ok {
		return san
	}
	if scratch.IsCheckmate() {
		return san + "#"
	}
	if scratch.InCheck() {
		return san + "+"
	}
	return san
}

// getDisambiguation returns the file, rank, or full-square prefix needed
// to distinguish m from other legal moves of the same piece type to the
// same destination.
func getDisambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	to := m.To()
	us := pos.SideToMove()
	pieces := pos.PieceBB(us, pt)

	var candidates []Square
	allMoves := pos.GenerateLegalMoves()
	for i := 0; i < allMoves.Len(); i++ {
		move := allMoves.Get(i)
		if move.To() != to || move.From() == from {
			continue
		}
		if pieces.IsSet(move.From()) {
			candidates = append(candidates, move.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string in the context of pos and returns the
// corresponding legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)

	if s == "O-O" || s == "0-0" {
		if pos.SideToMove() == White {
			return findLegal(pos, NewCastling(E1, G1))
		}
		return findLegal(pos, NewCastling(E8, G8))
	}
	if s == "O-O-O" || s == "0-0-0" {
		if pos.SideToMove() == White {
			return findLegal(pos, NewCastling(E1, C1))
		}
		return findLegal(pos, NewCastling(E8, C8))
	}

	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")
	s = strings.TrimSuffix(s, "!")
	s = strings.TrimSuffix(s, "?")

	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.Replace(s, "x", "", -1)

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("board: invalid SAN move %q", s)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid SAN move: %w", err)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() != dest {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !isCaptureOf(pos, m) {
			continue
		}
		if promoPiece != NoPieceType && (!m.IsPromotion() || m.Promotion() != promoPiece) {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("board: no legal move matches SAN %q", s)
}

func findLegal(pos *Position, want Move) (Move, error) {
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).Equal(want) {
			return moves.Get(i), nil
		}
	}
	return NoMove, fmt.Errorf("board: castling move %s is not legal", want)
}

// MovesToSAN renders a sequence of moves as SAN strings, applying each in
// turn to a scratch copy of pos.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		applied, ok := p.MakeMove(m)
		if !ok {
			break
		}
		_ = applied
	}

	return result
}
