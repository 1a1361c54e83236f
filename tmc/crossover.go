package tmc

import (
	"fmt"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Crossover picks a base complex and overwrites `degree` distinct slots with
// the ligands other population members hold at those slots
// degree 0 draws uniformly from 1..3. Each slot draws its own donor among the
// members that differ from the base; the attempt is redrawn until the charge
// is valid or the budget runs out, in which case the base is returned
func (g *Generator) Crossover(population []Complex, degree int) (Complex, error) {
	if len(population) == 0 {
		return Complex{}, ErrEmptyPopulation
	}
	if degree < 0 || degree > parameter.GACrossoverMaxDegree {
		return Complex{}, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}

	base := genetic.Pick(g.rng, population)

	if degree == 0 {
		span := parameter.GACrossoverMaxDegree - parameter.GACrossoverMinDegree + 1
		degree = parameter.GACrossoverMinDegree + g.rng.IntN(span)
	}
	slots := genetic.SampleIndices(g.rng, parameter.LigandSlots, degree)

	others := make([]Complex, 0, len(population))
	for _, c := range population {
		if c != base {
			others = append(others, c)
		}
	}
	if len(others) == 0 {
		return base, nil
	}

	if err := g.checkKnown(population); err != nil {
		return base, err
	}

	draw := genetic.ConstrainedDraw[Complex]{
		Generate: func(rng genetic.Rand) (Complex, bool) {
			child := base
			for _, slot := range slots {
				donor := genetic.Pick(rng, others)
				child[slot] = donor[slot]
			}
			return child, true
		},
		Accept:      g.Valid,
		MaxAttempts: g.crossoverAttempts,
	}

	child, _ := draw.Draw(g.rng, base)
	return child, nil
}

// checkKnown fails on the first ligand missing from the charge table
func (g *Generator) checkKnown(population []Complex) error {
	for _, c := range population {
		for _, lig := range c {
			if _, ok := g.charges.Charge(lig); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownLigand, lig)
			}
		}
	}
	return nil
}
