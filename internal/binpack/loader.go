package binpack

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/nullrook/chessplay/internal/config"
)

// ErrStopped is returned by Loader.Next once Stop has been called.
var ErrStopped = errors.New("binpack: loader stopped")

// slot is one worker's single-item mailbox: the worker decodes its next
// entry, then waits for the consumer to drain the slot before filling it.
type slot struct {
	mu       sync.Mutex
	cond     *sync.Cond
	ready    bool
	finished bool
	entry    Entry
	err      error
}

// Loader drives a fixed pool of Decoder workers, each reading its own
// stripe of one binpack file, and hands their entries to a single
// consumer in strict round-robin order (worker 0, 1, ..., n-1, 0, ...).
// This is the boundary type described by the concurrency model: the
// position engine itself stays single-threaded per Position, and Loader
// is the only place multiple decoders run concurrently.
type Loader struct {
	slots   []*slot
	stop    atomic.Bool
	next    int
	wg      sync.WaitGroup
	started bool
}

// OpenFunc returns a fresh reader for a given worker, e.g. re-opening the
// same file path so each worker owns an independent file handle.
type OpenFunc func(workerID int) (io.Reader, error)

// NewLoader starts numWorkers goroutines, each decoding its own stripe of
// the stream produced by open, and returns once all are running.
// config.LoaderWorkerCount is the default worker count when the caller has
// no more specific preference.
func NewLoader(open OpenFunc, numWorkers int, drop float64) (*Loader, error) {
	if numWorkers <= 0 {
		numWorkers = config.LoaderWorkerCount
	}

	l := &Loader{slots: make([]*slot, numWorkers)}
	for i := range l.slots {
		s := &slot{}
		s.cond = sync.NewCond(&s.mu)
		l.slots[i] = s
	}

	for id := 0; id < numWorkers; id++ {
		r, err := open(id)
		if err != nil {
			return nil, err
		}
		dec, err := NewDecoder(r, id, numWorkers, drop, config.BinpackReadBufferSize)
		if err != nil {
			return nil, err
		}
		l.wg.Add(1)
		go l.runWorker(id, dec)
	}
	l.started = true
	return l, nil
}

func (l *Loader) runWorker(id int, dec *Decoder) {
	defer l.wg.Done()
	s := l.slots[id]

	for {
		entry, err := dec.Next()

		s.mu.Lock()
		for s.ready && !l.stop.Load() {
			s.cond.Wait()
		}
		if l.stop.Load() {
			s.mu.Unlock()
			return
		}
		if err == io.EOF {
			s.finished = true
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		s.entry = entry
		s.err = err
		s.ready = true
		s.cond.Broadcast()
		s.mu.Unlock()

		if err != nil {
			return
		}
	}
}

// Next returns the next entry in round-robin worker order, io.EOF once
// every worker's stream is exhausted, or ErrStopped after Stop.
func (l *Loader) Next() (Entry, error) {
	remaining := len(l.slots)
	finished := make([]bool, len(l.slots))

	for remaining > 0 {
		if l.stop.Load() {
			return Entry{}, ErrStopped
		}

		idx := l.next
		l.next = (l.next + 1) % len(l.slots)

		if finished[idx] {
			continue
		}

		s := l.slots[idx]
		s.mu.Lock()
		for !s.ready && !s.finished && !l.stop.Load() {
			s.cond.Wait()
		}
		if l.stop.Load() {
			s.mu.Unlock()
			return Entry{}, ErrStopped
		}
		if s.finished {
			s.mu.Unlock()
			finished[idx] = true
			remaining--
			continue
		}

		entry, err := s.entry, s.err
		s.ready = false
		s.cond.Broadcast()
		s.mu.Unlock()

		if err != nil {
			return Entry{}, err
		}
		return entry, nil
	}

	return Entry{}, io.EOF
}

// Stop cancels every worker and wakes any goroutine blocked on a slot's
// condition variable. Safe to call more than once.
func (l *Loader) Stop() {
	l.stop.Store(true)
	for _, s := range l.slots {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// Wait blocks until every worker goroutine has exited.
func (l *Loader) Wait() {
	l.wg.Wait()
}
