package tmc

import (
	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Mutate replaces one randomly chosen ligand of c with a different catalog
// ligand that keeps the total charge in the band
// When no catalog ligand qualifies c is returned unchanged
func (g *Generator) Mutate(c Complex) (Complex, error) {
	slot := g.rng.IntN(parameter.LigandSlots)

	partial, err := g.policy.partialCharge(c, slot, g.charges)
	if err != nil {
		return c, err
	}

	replaced := c[slot]
	valid := make([]LigandID, 0, g.charges.Len())
	for _, lig := range g.charges.Catalog() {
		if lig == replaced {
			continue
		}
		q, _ := g.charges.Charge(lig)
		if g.band.Contains(partial + q) {
			valid = append(valid, lig)
		}
	}

	draw := genetic.ConstrainedDraw[Complex]{
		Generate: func(rng genetic.Rand) (Complex, bool) {
			if len(valid) == 0 {
				return Complex{}, false
			}
			child := c
			child[slot] = genetic.Pick(rng, valid)
			return child, true
		},
		MaxAttempts: parameter.GAMutationAttempts,
	}

	child, _ := draw.Draw(g.rng, c)
	return child, nil
}
