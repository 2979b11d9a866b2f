package board

import "testing"

func TestIsFiftyMoveDraw(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/4K3/8/8 w - - 49 60")
	if err != nil {
		t.Fatal(err)
	}
	if pos.IsFiftyMoveDraw() {
		t.Error("halfmove clock 49 should not yet be a fifty-move draw")
	}

	pos, err = ParseFEN("8/8/8/4k3/8/4K3/8/8 w - - 50 60")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsFiftyMoveDraw() {
		t.Error("halfmove clock 50 should be a fifty-move draw")
	}
}

func TestIsInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/4K3/8/8 w - - 0 1", true},          // bare kings
		{"8/8/8/4k3/8/4KB2/8/8 w - - 0 1", true},         // king + single bishop
		{"8/8/8/4k3/8/4KN2/8/8 w - - 0 1", true},         // king + single knight
		{"8/8/8/4k1n1/8/4KN2/8/8 w - - 0 1", false},      // knight vs knight
		{"8/8/8/4kp2/8/4K3/8/8 w - - 0 1", false},        // a pawn is on the board
		{"8/8/8/4kr2/8/4K3/8/8 w - - 0 1", false},        // a rook is on the board
	}
	for _, c := range cases {
		pos, err := ParseFEN(c.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", c.fen, err)
		}
		if got := pos.IsInsufficientMaterial(); got != c.want {
			t.Errorf("IsInsufficientMaterial(%q) = %v, want %v", c.fen, got, c.want)
		}
	}
}

func TestIsRepetitionDraw(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for round := 0; round < 2; round++ {
		for _, lan := range shuffle {
			m, err := ParseMove(lan)
			if err != nil {
				t.Fatal(err)
			}
			legal := pos.GenerateLegalMoves()
			var found Move
			var ok bool
			for i := 0; i < legal.Len(); i++ {
				cand := legal.Get(i)
				if cand.From() == m.From() && cand.To() == m.To() {
					found, ok = cand, true
					break
				}
			}
			if !ok {
				t.Fatalf("move %s not found as legal", lan)
			}
			if _, applied := pos.MakeMove(found); !applied {
				t.Fatalf("MakeMove(%s) failed", lan)
			}
		}
		if round == 0 && pos.IsRepetitionDraw() {
			t.Error("position repeated only once should not yet be a repetition draw")
		}
	}

	if !pos.IsRepetitionDraw() {
		t.Error("position repeated three times should be a repetition draw")
	}
}
