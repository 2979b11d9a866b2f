package board

import (
	"fmt"
	"strings"
)

// ParsePositionCommand parses a UCI "position" command — the only piece of
// the UCI protocol this package concerns itself with, since assembling a
// Position from a startpos/FEN and a list of played moves is a codec
// concern, not a protocol-loop concern.
//
// Accepted forms:
//
//	position startpos
//	position startpos moves e2e4 e7e5 ...
//	position fen <6 fields> [moves ...]
func ParsePositionCommand(command string) (*Position, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] != "position" {
		return nil, fmt.Errorf("board: uci position command must begin with \"position\"")
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("board: uci position command missing startpos/fen")
	}

	var pos *Position
	var rest []string

	switch fields[1] {
	case "startpos":
		p, err := ParseFEN(StartFEN)
		if err != nil {
			return nil, fmt.Errorf("board: uci position: %w", err)
		}
		pos = p
		rest = fields[2:]
	case "fen":
		if len(fields) < 8 {
			return nil, fmt.Errorf("board: uci position fen requires 6 fields")
		}
		fen := strings.Join(fields[2:8], " ")
		p, err := ParseFEN(fen)
		if err != nil {
			return nil, fmt.Errorf("board: uci position: %w", err)
		}
		pos = p
		rest = fields[8:]
	default:
		return nil, fmt.Errorf("board: uci position command does not contain valid startpos/fen info")
	}

	if len(rest) == 0 {
		return pos, nil
	}
	if rest[0] != "moves" {
		return nil, fmt.Errorf("board: uci position command contains invalid moves argument %q", rest[0])
	}

	for _, token := range rest[1:] {
		if err := applyLongAlgebraic(pos, token); err != nil {
			return nil, err
		}
	}

	return pos, nil
}

// applyLongAlgebraic parses a bare long-algebraic move and applies it to
// pos, resolving it against the position's legal moves so the correct
// en-passant/castle/promotion flags get set. Bare long algebraic (e.g.
// "e1g1") carries no castle/en-passant flag of its own, so the match is on
// from/to/promotion only, not full Move identity.
func applyLongAlgebraic(pos *Position, token string) error {
	want, err := ParseMove(token)
	if err != nil {
		return fmt.Errorf("board: uci position: %w", err)
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != want.From() || m.To() != want.To() {
			continue
		}
		if m.IsPromotion() != want.IsPromotion() || (m.IsPromotion() && m.Promotion() != want.Promotion()) {
			continue
		}
		if _, ok := pos.MakeMove(m); !ok {
			return fmt.Errorf("board: uci position: move %s rejected by MakeMove", token)
		}
		return nil
	}

	return fmt.Errorf("board: uci position: %s is not a legal move", token)
}
