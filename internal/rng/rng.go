// Package rng implements ports.RNGPort with a deterministic seed-derivation
// scheme adapted from the teacher's internal/testkit RNGAdapter: a base seed
// is combined with named identifiers via a djb2-style string hash so that
// per-trace PRNG streams are reproducible without any shared mutable state.
package rng

import (
	"context"
	"fmt"
	"math/rand"

	"gatekeeper/ports"
)

// Adapter implements ports.RNGPort.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

var _ ports.RNGPort = (*Adapter)(nil)

func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	combined := seed + int64(hashString(name))
	return rand.New(rand.NewSource(combined)), nil
}

func (a *Adapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	r, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := r.Float64()
		if got != want {
			return &seedMismatchError{index: i, want: want, got: got}
		}
	}
	return nil
}

type seedMismatchError struct {
	index     int
	want, got float64
}

func (e *seedMismatchError) Error() string {
	return fmt.Sprintf("rng: seed produced unexpected draw at index %d: want %v, got %v", e.index, e.want, e.got)
}

// hashString computes a djb2 hash of s.
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
