package opening

import (
	"bytes"
	"testing"

	"github.com/nullrook/chessplay/internal/binpack"
	"github.com/nullrook/chessplay/internal/board"
)

func TestCachePutProbeRoundTrip(t *testing.T) {
	cache, err := Open(t.TempDir(), NewBook())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	want, err := board.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	legal := pos.GenerateLegalMoves()
	var move board.Move
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i).From() == want.From() && legal.Get(i).To() == want.To() {
			move = legal.Get(i)
		}
	}

	if err := cache.Put(pos, move, 42); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := cache.Probe(pos)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.From() != board.E2 || got.To() != board.E4 {
		t.Errorf("expected e2-e4, got %s", got)
	}
}

func TestCacheProbeFallsBackToBook(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatal(err)
	}

	entry := polyglotEntry(pos.PolyglotHash(), 0x031C, 5)
	book, err := LoadPolyglotReader(bytes.NewReader(entry))
	if err != nil {
		t.Fatal(err)
	}

	cache, err := Open(t.TempDir(), book)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	move, ok := cache.Probe(pos)
	if !ok {
		t.Fatal("expected the book fallback to produce a move")
	}
	if move.From() != board.E2 || move.To() != board.E4 {
		t.Errorf("expected e2-e4 from the book fallback, got %s", move)
	}
}

// buildBinpackBlock frames payload the way the training-data stream does:
// an 8-byte "BINP" + little-endian length header followed by the payload.
func buildBinpackBlock(payload []byte) []byte {
	block := make([]byte, 0, 8+len(payload))
	block = append(block, 'B', 'I', 'N', 'P')
	n := len(payload)
	block = append(block, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	block = append(block, payload...)
	return block
}

func TestCacheIngest(t *testing.T) {
	payload := []byte{
		// occupancy: e1 (white king) and e8 (black king)
		0x10, 0, 0, 0, 0, 0, 0, 0x10,
		// nibbles: e1 -> white king (10), e8 -> black king (11)
		0xBA, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		// compressed move: normal, e1->e2
		0x04, 0x30,
		// score raw 10 -> +5
		0x00, 0x0A,
		// ply/result
		0x00, 0x01,
		// fifty-move counter
		0x00, 0x00,
		// no movetext continuation
		0x00, 0x00,
	}
	data := buildBinpackBlock(payload)

	dec, err := binpack.NewDecoder(bytes.NewReader(data), 0, 1, 0, 4096)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	cache, err := Open(t.TempDir(), NewBook())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	n, err := cache.Ingest(dec)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 ingested entry, got %d", n)
	}

	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	move, ok := cache.Probe(pos)
	if !ok {
		t.Fatal("expected the ingested entry to be found by hash")
	}
	if move.From() != board.E1 || move.To() != board.E2 {
		t.Errorf("expected e1-e2, got %s", move)
	}
}
