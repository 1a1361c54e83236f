package tmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tmc-evolve/parameter"
)

func TestCrossover_ScriptedSingleSlot(t *testing.T) {
	pop := samplePopulation()[:2]
	// base 0, slot 0, donor 0 of the single other member
	g := NewGenerator(sampleCharges(), WithRand(&scriptedRand{ints: []int{0, 0, 0}}))

	child, err := g.Crossover(pop, 1)
	require.NoError(t, err)
	assert.Equal(t, FromSlots(ligO, ligI, ligW, ligW), child)
}

func TestCrossover_RandomDegreeDrawnAfterBase(t *testing.T) {
	pop := samplePopulation()[:2]
	// base 0, degree index 2 -> 3 slots, three index draws, three donor draws
	rng := &scriptedRand{ints: []int{0, 2, 0, 0, 0, 0, 0, 0}}
	g := NewGenerator(sampleCharges(), WithRand(rng))

	child, err := g.Crossover(pop, 0)
	require.NoError(t, err)
	assert.Equal(t, FromSlots(ligO, ligW, ligW, ligW), child)
	assert.Empty(t, rng.ints)
}

func TestCrossover_ReorderedMembersAreDonors(t *testing.T) {
	base := FromSlots(ligC, ligI, ligO, ligW)
	tests := []struct {
		name  string
		other Complex
		slot  int
		want  Complex
	}{
		{"reversed", FromSlots(ligW, ligO, ligI, ligC), 0, FromSlots(ligW, ligI, ligO, ligW)},
		{"rotated", FromSlots(ligI, ligO, ligW, ligC), 2, FromSlots(ligC, ligI, ligW, ligW)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// base 0, one slot, donor 0 of the single other member
			rng := &scriptedRand{ints: []int{0, tt.slot, 0}}
			g := NewGenerator(sampleCharges(), WithRand(rng))

			child, err := g.Crossover([]Complex{base, tt.other}, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, child)
			assert.NotEqual(t, base, child)
			assert.Empty(t, rng.ints)
		})
	}
}

func TestCrossover_AttemptBudget(t *testing.T) {
	table := NewChargeTable(map[LigandID]int{
		ligW: -1, ligM: -1, ligU: -1, ligO: -1, ligC: -1, ligI: -1,
	})
	pop := samplePopulation()

	// base 0, slot 0, then exactly one donor draw per attempt; a further
	// draw would exhaust the script and panic
	ints := []int{0, 0}
	for range parameter.GACrossoverMaxAttempts {
		ints = append(ints, 0)
	}
	rng := &scriptedRand{ints: ints}
	g := NewGenerator(table, WithRand(rng))

	child, err := g.Crossover(pop, 1)
	require.NoError(t, err)
	assert.Equal(t, pop[0], child)
	assert.Empty(t, rng.ints)
}

func TestCrossover_IdenticalPopulationReturnsBase(t *testing.T) {
	base := samplePopulation()[0]
	pop := []Complex{base, base, base}

	for degree := 0; degree <= 3; degree++ {
		g := NewGenerator(sampleCharges(), WithSeed(uint64(degree)))
		child, err := g.Crossover(pop, degree)
		require.NoError(t, err)
		assert.Equal(t, base, child)
	}
}

func TestCrossover_ExhaustedBudgetReturnsBase(t *testing.T) {
	// every ligand at -1 puts any complex at -2
	table := NewChargeTable(map[LigandID]int{
		ligW: -1, ligM: -1, ligU: -1, ligO: -1, ligC: -1, ligI: -1,
	})
	pop := samplePopulation()

	for seed := uint64(0); seed < 30; seed++ {
		g := NewGenerator(table, WithSeed(seed))
		child, err := g.Crossover(pop, 0)
		require.NoError(t, err)
		assert.True(t, contains(pop, child), "fallback must be the unmodified base, got %s", child)
	}
}

func TestCrossover_ValidOrBase(t *testing.T) {
	table := sampleCharges()
	pop := samplePopulation()

	for seed := uint64(0); seed < 50; seed++ {
		g := NewGenerator(table, WithSeed(seed))
		for degree := 1; degree <= 3; degree++ {
			child, err := g.Crossover(pop, degree)
			require.NoError(t, err)
			assert.True(t, g.Valid(child) || contains(pop, child))
		}
	}
}

func TestCrossover_Errors(t *testing.T) {
	g := NewGenerator(sampleCharges(), WithSeed(1))

	_, err := g.Crossover(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyPopulation)

	_, err = g.Crossover(samplePopulation(), 4)
	assert.ErrorIs(t, err, ErrInvalidDegree)

	_, err = g.Crossover(samplePopulation(), -1)
	assert.ErrorIs(t, err, ErrInvalidDegree)

	pop := append(samplePopulation(), FromSlots("nope", ligW, ligW, ligW))
	_, err = g.Crossover(pop, 2)
	assert.ErrorIs(t, err, ErrUnknownLigand)
}
