package ising

import (
	"math/rand/v2"
	"time"
)

// Rand is the single random source every draw of an engine comes from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic PCG source for reproducible runs.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func defaultRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// permutation returns 0..n-1 shuffled with Durstenfeld's variant of Fisher-Yates.
func permutation(r Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// mod is a modulo whose result takes the sign of the divisor's magnitude,
// so mod(-1, n) == n-1.
func mod(dividend, divisor int) int {
	if divisor < 0 {
		divisor = -divisor
	}
	return (dividend%divisor + divisor) % divisor
}
