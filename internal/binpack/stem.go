package binpack

import (
	"fmt"

	"github.com/nullrook/chessplay/internal/board"
)

// readStem decodes one new entry from scratch: an occupancy bitboard, one
// piece nibble per occupied square, a compressed best move, a score, a
// ply/result pair, and a fifty-move counter, followed by the count of
// movetext plies that continue this entry. It reports false with a nil
// error when the underlying stream has no further blocks.
func (d *Decoder) readStem() (bool, error) {
	d.alignToByte()

	if !d.dataAvailable() {
		ok, err := d.advanceBlocks(d.numWorkers)
		if err != nil || !ok {
			return false, err
		}
	}

	builder := board.NewPositionBuilder()

	if d.byteIndex+8 > d.blockLen {
		return false, fmt.Errorf("binpack: truncated stem occupancy")
	}
	var occupied board.Bitboard
	for i := 0; i < 8; i++ {
		occupied |= board.Bitboard(d.buf[d.byteIndex+i]) << uint(56-8*i)
	}
	d.byteIndex += 8

	nibbleBase := d.byteIndex
	if nibbleBase+16 > d.blockLen {
		return false, fmt.Errorf("binpack: truncated stem piece nibbles")
	}

	var (
		blackToMove bool
		cr          board.CastlingRights
		ep          board.Square = board.NoSquare
	)

	i := 0
	occ := occupied
	for occ != 0 {
		sq := occ.PopLSB()
		var nibble byte
		if i%2 == 0 {
			nibble = d.buf[nibbleBase+i/2] & 0x0F
		} else {
			nibble = (d.buf[nibbleBase+i/2] & 0xF0) >> 4
		}
		i++

		switch {
		case nibble < 12:
			c := board.Color(nibble % 2)
			pt := board.PieceType(nibble/2 + 1)
			builder.SetPiece(board.NewPiece(pt, c), sq)

		case nibble == 12:
			// Pawn that just double-advanced; the ep-square sits one rank
			// behind it, direction determined by which half it landed on.
			c := board.Color(0)
			if int(sq)>>5&1 == 1 {
				c = board.Color(1)
			}
			var behind int
			if c == board.White {
				behind = int(sq) - 8
			} else {
				behind = int(sq) + 8
			}
			ep = board.Square(behind)
			builder.SetPiece(board.NewPiece(board.Pawn, c), sq)

		case nibble == 13, nibble == 14:
			c := board.Color((nibble - 1) % 2)
			if int(sq)%8 == 0 {
				cr |= cornerRight(c, false)
			} else {
				cr |= cornerRight(c, true)
			}
			builder.SetPiece(board.NewPiece(board.Rook, c), sq)

		case nibble == 15:
			blackToMove = true
			builder.SetPiece(board.NewPiece(board.King, board.Black), sq)

		default:
			return false, fmt.Errorf("binpack: unrecognised piece nibble %d", nibble)
		}
	}
	d.byteIndex += 16

	if d.byteIndex+10 > d.blockLen {
		return false, fmt.Errorf("binpack: truncated stem trailer")
	}

	compressedMove := readU16(d.buf[d.byteIndex:])
	d.byteIndex += 2

	startSquare := board.Square((compressedMove >> 8) & 0b111111)
	targetSquare := board.Square((compressedMove >> 2) & 0b111111)

	var move board.Move
	switch compressedMove >> 14 {
	case 1:
		promo := board.PieceType(compressedMove&0b11) + board.Knight
		move = board.NewPromotion(startSquare, targetSquare, promo)
	case 2:
		if targetSquare < startSquare {
			targetSquare = startSquare - 2
		} else {
			targetSquare = startSquare + 2
		}
		move = board.NewCastling(startSquare, targetSquare)
	case 3:
		move = board.NewEnPassant(startSquare, targetSquare)
	default:
		move = board.NewMove(startSquare, targetSquare)
	}

	score := unsignedToSigned(readU16(d.buf[d.byteIndex:]))
	d.byteIndex += 2

	plyAndResult := readU16(d.buf[d.byteIndex:])
	d.byteIndex += 2
	ply := int(plyAndResult & 0x3FFF)
	if (ply%2 == 1) != blackToMove {
		ply++
	}
	result := unsignedToSigned(plyAndResult >> 14)

	fiftyMove := int(readU16(d.buf[d.byteIndex:]))
	d.byteIndex += 2

	sideToMove := board.White
	if blackToMove {
		sideToMove = board.Black
	}

	pos, err := builder.Build(sideToMove, cr, ep, ply, fiftyMove)
	if err != nil {
		return false, fmt.Errorf("binpack: assembling stem position: %w", err)
	}
	if !pos.IsLegalMove(move) {
		return false, fmt.Errorf("binpack: stem move %s is not legal in %s", move, pos.ToFEN())
	}

	d.pliesRemaining = int(readU16(d.buf[d.byteIndex:]))
	d.byteIndex += 2

	d.cur = Entry{Position: pos, Move: move, Score: score, Result: result}
	d.started = true
	return true, nil
}

func cornerRight(c board.Color, kingSide bool) board.CastlingRights {
	if c == board.White {
		if kingSide {
			return board.WhiteKingSideCastle
		}
		return board.WhiteQueenSideCastle
	}
	if kingSide {
		return board.BlackKingSideCastle
	}
	return board.BlackQueenSideCastle
}
