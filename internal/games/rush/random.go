package rush

import "math/rand"

// Random is the only source of randomness the simulation uses.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// NewSeededRandom returns a math/rand source for the given seed.
func NewSeededRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// FixedRandom always returns the same value in [0, 1).
type FixedRandom float64

// Float64 implements Random.
func (f FixedRandom) Float64() float64 {
	v := float64(f)
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.999999
	}
	return v
}

// between draws uniformly from [lo, hi).
func between(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// spread draws uniformly from [-amount, amount).
func spread(r Random, amount float64) float64 {
	return between(r, -amount, amount)
}

// intBetween draws an integer from [lo, hi].
func intBetween(r Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := lo + int(r.Float64()*float64(hi-lo+1))
	if n > hi {
		n = hi
	}
	return n
}
