package board

import (
	"fmt"
	"strings"
	"time"
)

// FormatPGN renders a finished or in-progress game as a PGN string: the
// seven-tag roster (Event, Date, White, Black, Termination, Result, plus
// SetUp/FEN when the game didn't start from the standard position),
// followed by numbered SAN move text and the result token.
//
// moves must be legal in sequence starting from startFEN; headers
// overrides Event, Date, White, Black, Termination and Result by name, and
// any extra key is emitted verbatim after the roster. SetUp and FEN are
// always derived from startFEN; header keys with those names are ignored. A missing Result header is inferred from the
// final position: checkmate gives the mover's opponent the win, anything
// else with no legal replies is a draw, and an unfinished game is "*".
func FormatPGN(startFEN string, moves []Move, headers map[string]string) (string, error) {
	pos, err := ParseFEN(startFEN)
	if err != nil {
		return "", fmt.Errorf("board: FormatPGN: %w", err)
	}

	san := make([]string, 0, len(moves))
	cur := pos
	for i, m := range moves {
		if !cur.IsLegalMove(m) {
			return "", fmt.Errorf("board: FormatPGN: illegal move %s at ply %d", m, i)
		}
		san = append(san, m.ToSAN(cur))
		if _, ok := cur.MakeMove(m); !ok {
			return "", fmt.Errorf("board: FormatPGN: illegal move %s at ply %d", m, i)
		}
	}

	var sb strings.Builder
	writeTag(&sb, "Event", headers, "??")
	writeDateTag(&sb, headers)
	writeTag(&sb, "White", headers, "??")
	writeTag(&sb, "Black", headers, "??")

	termination := "Normal"
	if v, ok := headers["Termination"]; ok {
		termination = v
	} else if cur.HasLegalMoves() {
		termination = "Unterminated"
	}
	fmt.Fprintf(&sb, "[Termination %q]\n", termination)

	result := pgnResult(cur, headers)
	fmt.Fprintf(&sb, "[Result %q]\n", result)

	if startFEN != StartFEN {
		sb.WriteString("[SetUp \"1\"]\n")
		fmt.Fprintf(&sb, "[FEN %q]\n", startFEN)
	} else {
		sb.WriteString("[SetUp \"0\"]\n")
	}

	for k, v := range headers {
		switch k {
		case "Event", "Date", "White", "Black", "Termination", "Result", "SetUp", "FEN":
			continue
		}
		fmt.Fprintf(&sb, "[%s %q]\n", k, v)
	}

	sb.WriteByte('\n')
	for i, s := range san {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", i/2+1)
		}
		sb.WriteString(s)
		sb.WriteByte(' ')
	}
	sb.WriteString(result)
	sb.WriteString("\n\n")

	return sb.String(), nil
}

func writeTag(sb *strings.Builder, name string, headers map[string]string, fallback string) {
	v := fallback
	if h, ok := headers[name]; ok {
		v = h
	}
	fmt.Fprintf(sb, "[%s %q]\n", name, v)
}

func writeDateTag(sb *strings.Builder, headers map[string]string) {
	if v, ok := headers["Date"]; ok {
		fmt.Fprintf(sb, "[Date %q]\n", v)
		return
	}
	fmt.Fprintf(sb, "[Date %q]\n", time.Now().Format("2006.01.02"))
}

func pgnResult(final *Position, headers map[string]string) string {
	if v, ok := headers["Result"]; ok {
		return v
	}
	if final.HasLegalMoves() {
		return "*"
	}
	if !final.InCheck() {
		return "1/2-1/2"
	}
	if final.SideToMove() == White {
		return "0-1"
	}
	return "1-0"
}

