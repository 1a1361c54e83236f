package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	stats := Summarize([]float64{2, 8, 5})
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 8.0, stats.Best)
	assert.Equal(t, 2.0, stats.Worst)
	assert.Equal(t, 5.0, stats.Average)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats[float64]{}, Summarize[float64](nil))
}

func TestSummarize_Ints(t *testing.T) {
	stats := Summarize([]int{-1, 0, 1})
	assert.Equal(t, 1, stats.Best)
	assert.Equal(t, -1, stats.Worst)
	assert.Equal(t, 0, stats.Average)
}
