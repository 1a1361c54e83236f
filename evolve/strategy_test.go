package evolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tmc-evolve/space"
)

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyAll, StrategyBest, StrategyConst} {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("elite")
	assert.Error(t, err)
}

func TestStrategy_Parents(t *testing.T) {
	current := []space.Entry{{ID: "c1"}, {ID: "c2"}}
	history := []space.Entry{
		{ID: "a", Iter: 0},
		{ID: "b", Iter: 0},
		{ID: "c", Iter: 1},
		{ID: "a", Iter: 2},
	}

	t.Run("best", func(t *testing.T) {
		got := StrategyBest.Parents(current, history, zeroRand{})
		assert.Equal(t, []string{"c1", "c2"}, entryIDs(got))
		got[0].ID = "changed"
		assert.Equal(t, "c1", current[0].ID)
	})

	t.Run("const", func(t *testing.T) {
		got := StrategyConst.Parents(current, history, zeroRand{})
		assert.Equal(t, []string{"a", "b"}, entryIDs(got))
	})

	t.Run("all", func(t *testing.T) {
		got := StrategyAll.Parents(current, history, zeroRand{})
		assert.ElementsMatch(t, []string{"a", "b", "c"}, entryIDs(got))
		// zeroRand swaps each tail element with the head
		assert.Equal(t, []string{"b", "c", "a"}, entryIDs(got))
		assert.Equal(t, "a", history[0].ID)
	})
}
