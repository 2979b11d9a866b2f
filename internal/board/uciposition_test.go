package board

import "testing"

func TestParsePositionCommandStartpos(t *testing.T) {
	pos, err := ParsePositionCommand("position startpos")
	if err != nil {
		t.Fatal(err)
	}
	if got := pos.ToFEN(); got != StartFEN {
		t.Errorf("got %s want %s", got, StartFEN)
	}
}

func TestParsePositionCommandStartposMoves(t *testing.T) {
	pos, err := ParsePositionCommand("position startpos moves e2e4 e7e5 g1f3")
	if err != nil {
		t.Fatal(err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := pos.ToFEN(); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestParsePositionCommandFEN(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := ParsePositionCommand("position fen " + fen)
	if err != nil {
		t.Fatal(err)
	}
	if got := pos.ToFEN(); got != fen {
		t.Errorf("got %s want %s", got, fen)
	}
}

func TestParsePositionCommandFENWithMoves(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	pos, err := ParsePositionCommand("position fen " + fen + " moves e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.PieceAt(G1).Type() != King {
		t.Error("expected the king to have castled to g1")
	}
	if pos.PieceAt(F1).Type() != Rook {
		t.Error("expected the rook to have castled to f1")
	}
}

func TestParsePositionCommandErrors(t *testing.T) {
	cases := []string{
		"",
		"startpos",
		"position",
		"position nonsense",
		"position fen 1 2 3",
		"position startpos moves e2e5",
		"position startpos garbage",
	}
	for _, c := range cases {
		if _, err := ParsePositionCommand(c); err == nil {
			t.Errorf("ParsePositionCommand(%q) expected an error, got nil", c)
		}
	}
}
