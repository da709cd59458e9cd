// Package ports declares the interfaces the core gating pipeline depends on
// but does not implement, so adapters can be swapped without touching
// domain or internal/gate code.
package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// bootstrap resampling. Randomness is an explicit collaborator, not a
// global (spec §9): each gate call takes a seed, and the orchestrator
// derives per-trace seeds deterministically from a master seed and the
// trace name alone via SeededStream, so that (ci_low, ci_high, point) stays
// bitwise reproducible across runs over identical inputs (P5) — nothing
// run-specific (e.g. a fresh run identifier) may enter the seed mix.
type RNGPort interface {
	// SeededStream returns a deterministic RNG for a named operation,
	// combining name and seed so that two parallel workers evaluating
	// distinct traces never share a PRNG stream.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ValidateSeed is a test hook: it reruns SeededStream and checks the
	// first len(expected) draws match, to catch accidental nondeterminism
	// (e.g. a stray use of the global math/rand source).
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
