// Package config collects the tunables that the original C++ engine
// expressed as preprocessor macros — the fifty-move threshold, the
// repetition count, the metadata ring size, and the binpack loader's
// buffer sizing — as typed Go constants with one documented home.
package config

// MetadataRingLength is the length of Position's per-ply metadata ring.
// It must exceed any expected fifty-move counter, or a stale ring entry
// could alias into a legitimate repetition match.
const MetadataRingLength = 128

// FiftyMoveHalfMoveLimit is the half-move-clock threshold at which a
// position is ruled a fifty-move draw. This engine intentionally uses the
// more aggressive 50-half-move threshold rather than FIDE's 50-full-move
// (100-half-move) rule.
const FiftyMoveHalfMoveLimit = 50

// RepetitionCount is the number of occurrences (including the first) of a
// position required for it to be ruled a repetition draw.
const RepetitionCount = 3

// BinpackReadBufferSize is the size of the block buffer the binpack
// decoder allocates (the loader's default), and so the largest block it
// can load.
const BinpackReadBufferSize = 1 << 20

// LoaderWorkerCount is the default number of worker goroutines a
// binpack.Loader starts when the caller does not specify one explicitly.
const LoaderWorkerCount = 4
