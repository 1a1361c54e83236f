package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIndices_Distinct(t *testing.T) {
	rng := NewSeeded(7)
	for k := 0; k <= 4; k++ {
		for trial := 0; trial < 50; trial++ {
			idx := SampleIndices(rng, 4, k)
			require.Len(t, idx, k)

			seen := make(map[int]bool)
			for _, i := range idx {
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, 4)
				assert.False(t, seen[i], "duplicate index %d", i)
				seen[i] = true
			}
		}
	}
}

func TestSampleIndices_Clamped(t *testing.T) {
	rng := NewSeeded(7)
	assert.Len(t, SampleIndices(rng, 3, 10), 3)
	assert.Empty(t, SampleIndices(rng, 3, -1))
}

func TestSampleIndices_CoversAllPositions(t *testing.T) {
	rng := NewSeeded(11)
	hits := make([]int, 4)
	for trial := 0; trial < 400; trial++ {
		for _, i := range SampleIndices(rng, 4, 1) {
			hits[i]++
		}
	}
	for pos, n := range hits {
		assert.Greater(t, n, 0, "position %d never drawn", pos)
	}
}

func TestNewSeeded_Deterministic(t *testing.T) {
	a, b := NewSeeded(99), NewSeeded(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestPick_Global(t *testing.T) {
	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		assert.Contains(t, items, Pick(Global(), items))
	}
}
