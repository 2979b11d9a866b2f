package opening

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"

	"github.com/nullrook/chessplay/internal/binpack"
	"github.com/nullrook/chessplay/internal/board"
)

// cachedMove is the JSON payload stored per position hash: the move
// judged best from that position and the score it was given.
type cachedMove struct {
	Move  board.Move `json:"move"`
	Score int16      `json:"score"`
}

// Cache is a Badger-backed position→move lookup fed by decoded binpack
// streams, keyed by the same 48-bit position hash the metadata ring
// stores, with the Polyglot book as a fallback on a cache miss.
type Cache struct {
	db   *badger.DB
	book *Book
}

// Open opens (creating if needed) a Badger database at dir for use as a
// position cache, consulting book on every miss.
func Open(dir string, book *Book) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening: opening cache at %s: %w", dir, err)
	}
	return &Cache{db: db, book: book}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func hashKey(hash uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hash)
	return buf[:]
}

// Put records the move judged best from pos, keyed by pos.Hash().
func (c *Cache) Put(pos *board.Position, move board.Move, score int16) error {
	data, err := json.Marshal(cachedMove{Move: move, Score: score})
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hashKey(pos.Hash()), data)
	})
}

// Ingest drains dec, storing every decoded entry's move and score, and
// returns the number of entries stored.
func (c *Cache) Ingest(dec *binpack.Decoder) (int, error) {
	n := 0
	for {
		entry, err := dec.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("opening: ingesting binpack stream: %w", err)
		}
		if err := c.Put(entry.Position, entry.Move, entry.Score); err != nil {
			return n, err
		}
		n++
	}
}

// Probe looks up pos in the cache, falling back to the opening book on a
// miss or on a cached move that turns out illegal (a hash collision, or
// data from a position the cache predates a rules change for).
func (c *Cache) Probe(pos *board.Position) (board.Move, bool) {
	var cached cachedMove
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hashKey(pos.Hash()))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if err == nil && found && pos.IsLegalMove(cached.Move) {
		return cached.Move, true
	}
	return c.book.Probe(pos)
}
