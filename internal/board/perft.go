package board

// Perft counts the leaf nodes reachable from p at the given depth by
// exhaustively playing every legal move — the standard move-generator
// correctness check, exposed here for external tooling (the perft
// subcommand of cmd/chessplay-tools) as well as this package's own tests.
func Perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		applied, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		nodes += Perft(p, depth-1)
		p.UnmakeMove(applied)
	}
	return nodes
}
