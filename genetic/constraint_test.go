package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstrainedDraw_AcceptsFirstValid(t *testing.T) {
	calls := 0
	cd := &ConstrainedDraw[int]{
		Generate: func(rng Rand) (int, bool) {
			calls++
			return calls, true
		},
		Accept:      func(v int) bool { return v == 3 },
		MaxAttempts: 10,
	}

	got, ok := cd.Draw(NewSeeded(1), -1)
	require.True(t, ok)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, calls)
}

func TestConstrainedDraw_FallbackAfterBudget(t *testing.T) {
	calls := 0
	cd := &ConstrainedDraw[string]{
		Generate: func(rng Rand) (string, bool) {
			calls++
			return "attempt", true
		},
		Accept:      func(string) bool { return false },
		MaxAttempts: 10,
	}

	got, ok := cd.Draw(NewSeeded(1), "base")
	assert.False(t, ok)
	assert.Equal(t, "base", got)
	assert.Equal(t, 10, calls)
}

func TestConstrainedDraw_ImpossibleGenerateStopsImmediately(t *testing.T) {
	calls := 0
	cd := &ConstrainedDraw[int]{
		Generate: func(rng Rand) (int, bool) {
			calls++
			return 0, false
		},
		MaxAttempts: 5,
	}

	got, ok := cd.Draw(NewSeeded(1), 42)
	assert.False(t, ok)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestConstrainedDraw_NilAcceptAndZeroAttempts(t *testing.T) {
	cd := &ConstrainedDraw[int]{
		Generate: func(rng Rand) (int, bool) { return 7, true },
	}

	got, ok := cd.Draw(NewSeeded(1), 0)
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}
