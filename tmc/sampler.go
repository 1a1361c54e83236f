package tmc

import (
	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Sample produces n offspring from population, in generation order
// Each offspring flips a coin: crossover over the whole population when the
// draw exceeds the threshold, otherwise mutation of one random member.
// n below 1 yields a single offspring. Offspring may duplicate existing members
func (g *Generator) Sample(population []Complex, n int) ([]Complex, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}
	if n < 1 {
		n = parameter.GADefaultOffspring
	}

	offspring := make([]Complex, 0, n)
	for i := 0; i < n; i++ {
		var (
			child Complex
			err   error
		)
		if g.rng.Float64() > g.crossoverThresh {
			child, err = g.Crossover(population, 0)
		} else {
			child, err = g.Mutate(genetic.Pick(g.rng, population))
		}
		if err != nil {
			return nil, err
		}
		offspring = append(offspring, child)
	}
	return offspring, nil
}
