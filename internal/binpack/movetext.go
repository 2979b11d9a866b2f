package binpack

import (
	"fmt"

	"github.com/nullrook/chessplay/internal/board"
)

// readMovetextEntry advances the current entry by one movetext ply: apply
// the previous move, decode the next move and score delta from the bit
// stream, and flip the game result to the new mover's perspective.
func (d *Decoder) readMovetextEntry() error {
	d.pliesRemaining--

	next := d.cur.Position.Copy()
	if _, ok := next.MakeMove(d.cur.Move); !ok {
		return fmt.Errorf("binpack: movetext move %s illegal in %s", d.cur.Move, d.cur.Position.ToFEN())
	}

	move, err := d.readVLEMove(next)
	if err != nil {
		return err
	}
	delta, err := d.readVLEInt()
	if err != nil {
		return err
	}

	d.cur = Entry{
		Position: next,
		Move:     move,
		Score:    -d.cur.Score + unsignedToSigned(uint16(delta)),
		Result:   -d.cur.Result,
	}
	return nil
}

// readVLEMove decodes one move relative to pos: first the moving piece,
// chosen by index among friendly pieces ordered by square, then the
// destination among that piece's pseudo-legal targets.
func (d *Decoder) readVLEMove(pos *board.Position) (board.Move, error) {
	us := pos.SideToMove()
	friendly := pos.Occupied(us)

	numPieces := friendly.PopCount()
	pieceID, err := d.readBits(bitWidth(uint32(numPieces)))
	if err != nil {
		return 0, err
	}
	start, err := indexOfNthSetBit(friendly, pieceID)
	if err != nil {
		return 0, fmt.Errorf("binpack: decoding move piece index: %w", err)
	}

	dest := pos.PseudoDestinations(start)
	pieceType := pos.PieceAt(start).Type()

	var move board.Move
	switch pieceType {
	case board.Pawn:
		move, err = d.readPawnMove(pos, start, dest)
	case board.King:
		move, err = d.readKingMove(pos, start, dest, us)
	default:
		move, err = d.readPlainMove(start, dest)
	}
	if err != nil {
		return 0, err
	}

	if !pos.IsLegalMove(move) {
		return 0, fmt.Errorf("binpack: decoded move %s illegal in %s", move, pos.ToFEN())
	}
	return move, nil
}

const promotingSquares = board.Rank1 | board.Rank8

func (d *Decoder) readPawnMove(pos *board.Position, start board.Square, dest board.Bitboard) (board.Move, error) {
	if dest&promotingSquares != 0 {
		numMoves := 4 * dest.PopCount()
		moveID, err := d.readBits(bitWidth(uint32(numMoves)))
		if err != nil {
			return 0, err
		}
		target, err := indexOfNthSetBit(dest, moveID/4)
		if err != nil {
			return 0, err
		}
		promo := board.PieceType(moveID%4) + board.Knight
		return board.NewPromotion(start, target, promo), nil
	}

	epSquare := pos.EnPassant()
	if epSquare != board.NoSquare && dest.IsSet(epSquare) {
		epMove := board.NewEnPassant(start, epSquare)
		if !pos.IsLegalMove(epMove) {
			dest &^= board.SquareBB(epSquare)
		}
	}

	numMoves := dest.PopCount()
	moveID, err := d.readBits(bitWidth(uint32(numMoves)))
	if err != nil {
		return 0, err
	}
	target, err := indexOfNthSetBit(dest, moveID)
	if err != nil {
		return 0, err
	}
	if target == epSquare && epSquare != board.NoSquare {
		return board.NewEnPassant(start, target), nil
	}
	return board.NewMove(start, target), nil
}

func (d *Decoder) readKingMove(pos *board.Position, start board.Square, dest board.Bitboard, us board.Color) (board.Move, error) {
	cr := pos.CastlingRights()
	kingSide := cr.CanCastle(us, true)
	queenSide := cr.CanCastle(us, false)
	numCastlings := 0
	if kingSide {
		numCastlings++
	}
	if queenSide {
		numCastlings++
	}

	numMoves := dest.PopCount()
	moveID, err := d.readBits(bitWidth(uint32(numMoves + numCastlings)))
	if err != nil {
		return 0, err
	}

	if moveID >= uint32(numMoves) {
		rank := moveID - uint32(numMoves)
		if rank > 0 || !queenSide {
			return board.NewCastling(start, start+2), nil
		}
		return board.NewCastling(start, start-2), nil
	}

	target, err := indexOfNthSetBit(dest, moveID)
	if err != nil {
		return 0, err
	}
	return board.NewMove(start, target), nil
}

func (d *Decoder) readPlainMove(start board.Square, dest board.Bitboard) (board.Move, error) {
	numMoves := dest.PopCount()
	moveID, err := d.readBits(bitWidth(uint32(numMoves)))
	if err != nil {
		return 0, err
	}
	target, err := indexOfNthSetBit(dest, moveID)
	if err != nil {
		return 0, err
	}
	return board.NewMove(start, target), nil
}
