package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a fresh Position, deriving the halfmove
// number from the full-move number and side to move and seeding that
// halfmove number's metadata slot directly from the parsed fields.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("board: invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := &Position{}
	pos.kingSquare[White] = NoSquare
	pos.kingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	var sideToMove Color
	switch parts[1] {
	case "w":
		sideToMove = White
	case "b":
		sideToMove = Black
	default:
		return nil, fmt.Errorf("board: invalid side to move: %s", parts[1])
	}

	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}

	ep := NoSquare
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid en passant square: %s", parts[3])
		}
		ep = sq
	}

	clock := 0
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("board: invalid half-move clock: %s", parts[4])
		}
		clock = hmc
	}

	fullMove := 1
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("board: invalid full-move number: %s", parts[5])
		}
		fullMove = fmn
	}

	if pos.kingSquare[White] == NoSquare || pos.kingSquare[Black] == NoSquare {
		return nil, fmt.Errorf("board: FEN must place exactly one king per side")
	}

	pos.halfmoveNumber = 2*(fullMove-1) + int(sideToMove)
	hash := pos.computeHash(sideToMove, cr, ep)
	pos.meta[pos.halfmoveNumber%metadataRingLength] = packMetadata(clock, ep, cr, hash)

	pos.UpdateCheckers()

	return pos, nil
}

func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("board: invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("board: too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("board: invalid piece character: %c", c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("board: invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return 0, fmt.Errorf("board: invalid castling character: %c", c)
		}
	}
	return cr, nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights().String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant().String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))

	return sb.String()
}

// computeHash builds the position's full Zobrist hash from the mailbox
// plus the state fields not otherwise derivable from it. Used when a
// position is loaded (ParseFEN, PositionBuilder.Build), where there is no
// prior metadata entry to XOR against, and by ComputeHash.
func (p *Position) computeHash(sideToMove Color, cr CastlingRights, ep Square) uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.bb[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= ZobristPiece(c, pt, sq)
			}
		}
	}
	if sideToMove == Black {
		hash ^= ZobristSideToMove()
	}
	hash ^= ZobristCastling(cr)
	if ep != NoSquare {
		hash ^= ZobristEnPassant(ep.File())
	}
	return hash
}

// ComputeHash recomputes the position's stored hash from scratch, for
// verifying the incremental make/unmake maintenance stays in sync.
func (p *Position) ComputeHash() uint64 {
	return p.computeHash(p.SideToMove(), p.CastlingRights(), p.EnPassant()) &^ metaHashLowMask
}
