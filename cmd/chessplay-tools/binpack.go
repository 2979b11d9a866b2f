package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nullrook/chessplay/internal/binpack"
	"github.com/nullrook/chessplay/internal/config"
)

func runBinpack(args []string) error {
	fs := flag.NewFlagSet("binpack", flag.ExitOnError)
	workers := fs.Int("workers", config.LoaderWorkerCount, "number of striped reader workers")
	drop := fs.Float64("drop", 0, "probability of skipping a decoded entry")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("binpack: expected <path>, got %d arguments", len(rest))
	}
	path := rest[0]

	loader, err := binpack.NewLoader(func(workerID int) (io.Reader, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("binpack: opening %s for worker %d: %w", path, workerID, err)
		}
		return f, nil
	}, *workers, *drop)
	if err != nil {
		return fmt.Errorf("binpack: %w", err)
	}
	defer loader.Stop()

	var count int64
	for {
		entry, err := loader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("binpack: %w", err)
		}
		count++
		if count%100000 == 0 {
			log.Printf("decoded %d entries; last: %s score=%d result=%d", count, entry.Position.ToFEN(), entry.Score, entry.Result)
		}
	}

	log.Printf("done: decoded %d entries from %s", count, path)
	return nil
}
