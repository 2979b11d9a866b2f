// Command chessplay-tools is a small collection of standalone utilities
// built on the position engine: a perft correctness/speed check and a
// binpack training-data stream inspector.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nullrook/chessplay/internal/board"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "perft":
		err = runPerft(args[1:])
	case "binpack":
		err = runBinpack(args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  chessplay-tools perft <fen> <depth>")
	fmt.Fprintln(os.Stderr, "  chessplay-tools binpack [-workers N] [-drop P] <path>")
}

func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("perft: expected <fen> <depth>, got %d arguments", len(rest))
	}

	fen := rest[0]
	if fen == "startpos" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}

	var depth int
	if _, err := fmt.Sscanf(rest[1], "%d", &depth); err != nil {
		return fmt.Errorf("perft: invalid depth %q: %w", rest[1], err)
	}

	for d := 1; d <= depth; d++ {
		nodes := board.Perft(pos, d)
		log.Printf("perft(%d) = %d", d, nodes)
	}
	return nil
}
