// Package rng turns seed strings into deterministic random sources.
package rng

import (
	"math/rand"
	"time"

	g "github.com/zyedidia/generic"
)

// Resolve returns the seed string a run should use. An empty seed or
// forceRandom picks a fresh seed from the wall clock so the run can still be
// replayed later.
func Resolve(seed string, forceRandom bool) string {
	if forceRandom || seed == "" {
		return time.Now().UTC().Format(time.RFC3339Nano)
	}
	return seed
}

// New returns a source seeded from the hash of seed.
func New(seed string) *rand.Rand {
	return rand.New(rand.NewSource(int64(g.HashString(seed))))
}

// Range returns an int in [lo, hi). When the range is empty it returns lo.
func Range(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}
