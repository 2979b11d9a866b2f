// Package opening provides a persisted, position-keyed move suggestion
// service: a Polyglot opening book for well-known positions, backed by a
// Badger cache of moves observed in decoded training-data streams for
// everything else.
package opening

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/nullrook/chessplay/internal/board"
)

// BookEntry is one Polyglot book move: the move itself and its relative
// popularity weight.
type BookEntry struct {
	Move   board.Move
	Weight uint16
}

// Book is an in-memory Polyglot opening book, keyed by Polyglot's own
// position hash (see board.Position.PolyglotHash).
type Book struct {
	entries map[uint64][]BookEntry
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{entries: make(map[uint64][]BookEntry)}
}

// LoadPolyglot loads a Polyglot-format opening book from a file.
func LoadPolyglot(path string) (*Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadPolyglotReader(file)
}

// LoadPolyglotReader loads a Polyglot-format book from a reader. Each
// entry is 16 bytes: 8-byte position key, 2-byte move, 2-byte weight,
// 4 bytes of learning data this engine ignores.
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	book := NewBook()
	var entry [16]byte

	for {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		key := binary.BigEndian.Uint64(entry[0:8])
		moveData := binary.BigEndian.Uint16(entry[8:10])
		weight := binary.BigEndian.Uint16(entry[10:12])

		move := decodePolyglotMove(moveData)
		if move != board.NoMove {
			book.entries[key] = append(book.entries[key], BookEntry{Move: move, Weight: weight})
		}
	}

	return book, nil
}

// decodePolyglotMove converts a Polyglot move encoding — 0-5 to-square,
// 6-11 from-square, 12-14 promotion piece, castling stored as
// king-captures-rook — into a board.Move with our own castling encoding.
func decodePolyglotMove(data uint16) board.Move {
	toFile := data & 7
	toRank := (data >> 3) & 7
	fromFile := (data >> 6) & 7
	fromRank := (data >> 9) & 7
	promo := (data >> 12) & 7

	from := board.NewSquare(int(fromFile), int(fromRank))
	to := board.NewSquare(int(toFile), int(toRank))

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	if promo > 0 {
		promoTypes := [5]board.PieceType{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		return board.NewPromotion(from, to, promoTypes[promo])
	}
	return board.NewMove(from, to)
}

// Probe looks up pos in the book and picks a move by weighted random
// selection, favoring nothing but weight (entries are not otherwise
// biased). Returns false if pos has no book entries.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	entries, ok := b.entries[pos.PolyglotHash()]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return verifyAndConvert(pos, entries[0].Move), true
	}

	r := rand.Uint32() % total
	var cumulative uint32
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return verifyAndConvert(pos, e.Move), true
		}
	}
	return verifyAndConvert(pos, entries[0].Move), true
}

// verifyAndConvert finds the matching legal move so castling/en-passant/
// promotion flags are correct, discarding a book move that turns out not
// to be legal (a hash collision, or a book built for a different variant).
func verifyAndConvert(pos *board.Position, move board.Move) board.Move {
	legal := pos.GenerateLegalMoves()
	from, to := move.From(), move.To()

	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != from || lm.To() != to {
			continue
		}
		if move.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if move.IsPromotion() && move.Promotion() != lm.Promotion() {
			continue
		}
		return lm
	}
	return board.NoMove
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
