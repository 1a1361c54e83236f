package genetic

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Randomness ---

// Rand is the random source consumed by every operator
// *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	// IntN returns a uniform int in [0, n), panics if n <= 0
	IntN(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0)
	Float64() float64
}

// --- Statistics ---

// Stats contains statistical information about a scored population
type Stats[F Numeric] struct {
	Count   int
	Best    F
	Worst   F
	Average F
}
