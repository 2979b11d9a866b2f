package board

import "testing"

// TestPolyglotHashKnownPositions checks PolyglotHash against the reference
// test vectors published with the Polyglot opening-book format: a fixed
// sequence of moves from the starting position, each with a known hash.
func TestPolyglotHashKnownPositions(t *testing.T) {
	cases := []struct {
		moves []string
		want  uint64
	}{
		{nil, 0x463b96181691fc9c},
		{[]string{"e2e4"}, 0x823c9b50fd114196},
		{[]string{"e2e4", "d7d5"}, 0x0756b94461c50fb0},
		{[]string{"e2e4", "d7d5", "e4e5"}, 0x662fafb965db29d4},
		{[]string{"e2e4", "d7d5", "e4e5", "f7f5"}, 0x22a48b5a8e47ff78},
		{[]string{"e2e4", "d7d5", "e4e5", "f7f5", "e1e2"}, 0x652a607ca3f242c1},
		{[]string{"e2e4", "d7d5", "e4e5", "f7f5", "e1e2", "e8e7"}, 0x00fdd303c946bdd9},
		{[]string{"e2e4", "d7d5", "e4e5", "f7f5", "e1e2", "e8e7", "e2e1"}, 0x3c8123ea7b067637},
		{[]string{"e2e4", "d7d5", "e4e5", "f7f5", "e1e2", "e8e7", "e2e1", "e7e8"}, 0x5c3f9b829b279560},
	}

	for _, c := range cases {
		cmd := "position startpos"
		if len(c.moves) > 0 {
			cmd += " moves"
			for _, m := range c.moves {
				cmd += " " + m
			}
		}
		pos, err := ParsePositionCommand(cmd)
		if err != nil {
			t.Fatalf("ParsePositionCommand(%q): %v", cmd, err)
		}
		if got := pos.PolyglotHash(); got != c.want {
			t.Errorf("moves %v: PolyglotHash() = %#x, want %#x", c.moves, got, c.want)
		}
	}
}
