package evolve

import (
	"context"

	"github.com/lixenwraith/tmc-evolve/tmc"
)

// Proposer suggests new complexes from a set of parents
type Proposer interface {
	Propose(ctx context.Context, parents []tmc.Complex, n int) ([]tmc.Complex, error)
}

// GAProposer proposes offspring with the charge-constrained genetic sampler
type GAProposer struct {
	gen *tmc.Generator
}

// NewGAProposer wraps a generator
func NewGAProposer(gen *tmc.Generator) *GAProposer {
	return &GAProposer{gen: gen}
}

// Propose returns n offspring of parents
func (p *GAProposer) Propose(ctx context.Context, parents []tmc.Complex, n int) ([]tmc.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.gen.Sample(parents, n)
}

var _ Proposer = (*GAProposer)(nil)
