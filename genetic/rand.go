package genetic

import "math/rand/v2"

// globalRand forwards to the process-wide math/rand/v2 source
// Top-level math/rand/v2 functions are safe for concurrent use
type globalRand struct{}

func (globalRand) IntN(n int) int    { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Global returns the process-wide random source
func Global() Rand {
	return globalRand{}
}

// NewSeeded returns a deterministic source, seeded the way the engines seed PCG
// Not safe for concurrent use
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Pick returns a uniformly chosen element, items must be non-empty
func Pick[T any](rng Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// SampleIndices draws k distinct indices from [0, n) without replacement
// Order of the result is the draw order; k is clamped to n
func SampleIndices(rng Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}

	// Partial Fisher-Yates over an index table
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
