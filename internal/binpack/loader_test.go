package binpack

import (
	"bytes"
	"io"
	"testing"
)

// stemWithScore returns a single self-contained block encoding the same
// kings-only position and move as kingsOnlyStem but with a caller-chosen
// even raw score word, so two blocks can be told apart by Entry.Score.
func stemWithScore(rawScore byte) []byte {
	payload := []byte{
		0x10, 0, 0, 0, 0, 0, 0, 0x10,
		0xBA, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0x04, 0x30,
		0x00, rawScore,
		0x00, 0x01,
		0x00, 0x00,
		0x00, 0x00,
	}
	return buildBlock(payload)
}

func TestLoaderRoundRobinsWorkers(t *testing.T) {
	// Block 0 belongs to worker 0 of 2 and decodes to score 5 (raw 10);
	// block 1 belongs to worker 1 and decodes to score 7 (raw 14).
	full := append(append([]byte{}, stemWithScore(10)...), stemWithScore(14)...)

	loader, err := NewLoader(func(workerID int) (io.Reader, error) {
		return bytes.NewReader(full), nil
	}, 2, 0)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	defer loader.Stop()

	first, err := loader.Next()
	if err != nil {
		t.Fatalf("Next (worker 0's entry): %v", err)
	}
	if first.Score != 5 {
		t.Errorf("expected worker 0's entry first with score 5, got %d", first.Score)
	}

	second, err := loader.Next()
	if err != nil {
		t.Fatalf("Next (worker 1's entry): %v", err)
	}
	if second.Score != 7 {
		t.Errorf("expected worker 1's entry second with score 7, got %d", second.Score)
	}

	if _, err := loader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF once both workers are exhausted, got %v", err)
	}

	loader.Wait()
}

func TestLoaderStopUnblocksNext(t *testing.T) {
	full := stemWithScore(10)

	loader, err := NewLoader(func(workerID int) (io.Reader, error) {
		return bytes.NewReader(full), nil
	}, 1, 0)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	if _, err := loader.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	loader.Stop()
	if _, err := loader.Next(); err != ErrStopped {
		t.Errorf("expected ErrStopped after Stop, got %v", err)
	}
	loader.Wait()
}
