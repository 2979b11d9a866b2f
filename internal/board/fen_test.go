package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip mismatch:\n got:  %s\n want: %s", got, fen)
		}
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not a fen string",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // invalid side to move
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",          // wrong rank count
		"8/8/8/8/8/8/8/8 w - - 0 1",                                // no kings at all
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // invalid ep square
	}
	for _, fen := range cases {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) expected an error, got nil", fen)
		}
	}
}
