package tmc

import (
	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Generator holds the charge table and operator settings shared by
// Mutate, Crossover and Sample
// A Generator built with WithSeed is not safe for concurrent use
type Generator struct {
	charges           *ChargeTable
	band              ChargeBand
	policy            ChargePolicy
	crossoverAttempts int
	crossoverThresh   float64
	rng               genetic.Rand
}

// Option customizes a Generator
type Option func(*Generator)

// WithRand injects the random source, panics on nil
func WithRand(r genetic.Rand) Option {
	if r == nil {
		panic("tmc: WithRand(nil)")
	}
	return func(g *Generator) {
		g.rng = r
	}
}

// WithSeed uses a deterministic PCG source
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = genetic.NewSeeded(seed)
	}
}

// WithBand overrides the accepted charge band
func WithBand(b ChargeBand) Option {
	return func(g *Generator) {
		g.band = b
	}
}

// WithPolicy selects the mutation partial-charge policy
func WithPolicy(p ChargePolicy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// WithCrossoverAttempts overrides the crossover retry budget
func WithCrossoverAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.crossoverAttempts = n
		}
	}
}

// WithCrossoverThreshold sets the draw above which Sample picks crossover
func WithCrossoverThreshold(t float64) Option {
	return func(g *Generator) {
		g.crossoverThresh = t
	}
}

// NewGenerator creates a generator over the given charge table
func NewGenerator(charges *ChargeTable, opts ...Option) *Generator {
	g := &Generator{
		charges:           charges,
		band:              DefaultBand,
		policy:            ExcludeSlot,
		crossoverAttempts: parameter.GACrossoverMaxAttempts,
		crossoverThresh:   parameter.GACrossoverThreshold,
		rng:               genetic.Global(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Charges returns the generator's charge table
func (g *Generator) Charges() *ChargeTable {
	return g.charges
}

// Valid reports whether c has a known total charge inside the band
func (g *Generator) Valid(c Complex) bool {
	q, err := c.Charge(g.charges)
	return err == nil && g.band.Contains(q)
}
