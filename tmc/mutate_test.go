package tmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutate_ProducesValidCharge(t *testing.T) {
	table := sampleCharges()
	for seed := uint64(0); seed < 50; seed++ {
		g := NewGenerator(table, WithSeed(seed))
		for _, parent := range samplePopulation() {
			child, err := g.Mutate(parent)
			require.NoError(t, err)

			q, err := child.Charge(table)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, q, -1)
			assert.LessOrEqual(t, q, 1)

			diff := 0
			for i := range child {
				if child[i] != parent[i] {
					diff++
				}
			}
			assert.LessOrEqual(t, diff, 1, "mutation changed more than one slot")
		}
	}
}

func TestMutate_NoValidReplacementReturnsInput(t *testing.T) {
	table := NewChargeTable(map[LigandID]int{"A": 0, "B": 0, "C": 0, "D": 0})
	g := NewGenerator(table, WithSeed(3))
	parent := FromSlots("A", "B", "C", "D")

	for i := 0; i < 20; i++ {
		child, err := g.Mutate(parent)
		require.NoError(t, err)
		assert.Equal(t, "Pd_A_B_C_D", child.String())
	}
}

func TestMutate_NeverReusesReplacedLigand(t *testing.T) {
	table := NewChargeTable(map[LigandID]int{"A": -1, "B": -1, "N": 0})
	parent := FromSlots("A", "N", "N", "N")

	// slot 0 holds A; partial charge is 2 so only -1 ligands qualify, and A is excluded
	g := NewGenerator(table, WithRand(&scriptedRand{ints: []int{0, 0}}))
	child, err := g.Mutate(parent)
	require.NoError(t, err)
	assert.Equal(t, FromSlots("B", "N", "N", "N"), child)
}

func TestMutate_ChargePolicies(t *testing.T) {
	table := NewChargeTable(map[LigandID]int{"A": -1, "D": -3, "N": 0})
	parent := FromSlots("A", "A", "N", "N")

	t.Run("slot", func(t *testing.T) {
		g := NewGenerator(table, WithRand(&scriptedRand{ints: []int{0, 0}}))
		child, err := g.Mutate(parent)
		require.NoError(t, err)
		assert.Equal(t, FromSlots("N", "A", "N", "N"), child)
		assert.True(t, g.Valid(child))
	})

	t.Run("matching", func(t *testing.T) {
		g := NewGenerator(table, WithPolicy(ExcludeMatching), WithRand(&scriptedRand{ints: []int{0, 0}}))
		child, err := g.Mutate(parent)
		require.NoError(t, err)
		// both A slots are dropped from the partial charge, so D looks valid
		assert.Equal(t, FromSlots("D", "A", "N", "N"), child)
		q, err := child.Charge(table)
		require.NoError(t, err)
		assert.Equal(t, -2, q)
	})
}

func TestMutate_UnknownLigand(t *testing.T) {
	g := NewGenerator(sampleCharges(), WithSeed(1))
	_, err := g.Mutate(FromSlots("nope", ligW, ligW, ligW))
	assert.ErrorIs(t, err, ErrUnknownLigand)
}

func TestMutate_DecodeReencodeStable(t *testing.T) {
	g := NewGenerator(sampleCharges(), WithSeed(5))
	for _, parent := range samplePopulation() {
		child, err := g.Mutate(parent)
		require.NoError(t, err)

		decoded, err := Decode(child.String())
		require.NoError(t, err)
		assert.Equal(t, child.String(), decoded.String())
	}
}
