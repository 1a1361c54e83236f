package evolve

import (
	"context"
	"errors"

	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/space"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

// zeroRand always draws the lowest value
type zeroRand struct{}

func (zeroRand) IntN(int) int      { return 0 }
func (zeroRand) Float64() float64 { return 0 }

func row(id string, gap float64, ligs ...string) space.Entry {
	return space.Entry{
		ID:      id,
		Ligands: tmc.FromSlots(ligs[0], ligs[1], ligs[2], ligs[3]),
		Props:   map[string]float64{objective.PropGap: gap, objective.PropPolarisability: 1},
	}
}

func smallSpace() *space.Space {
	return space.New([]space.Entry{
		row("e0", 1, "A", "A", "A", "B"),
		row("e1", 2, "A", "A", "B", "B"),
		row("e2", 5, "A", "B", "A", "B"),
		row("e3", 3, "B", "B", "B", "A"),
		row("e4", 4, "C", "C", "C", "C"),
		row("e5", 0.5, "D", "D", "D", "D"),
	}, []string{objective.PropGap, objective.PropPolarisability})
}

// scriptedProposer returns one fixed batch per call
type scriptedProposer struct {
	rounds  [][]tmc.Complex
	parents [][]tmc.Complex
	err     error
}

func (p *scriptedProposer) Propose(_ context.Context, parents []tmc.Complex, _ int) ([]tmc.Complex, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.parents = append(p.parents, parents)
	if len(p.rounds) == 0 {
		return nil, errors.New("scriptedProposer: no rounds left")
	}
	out := p.rounds[0]
	p.rounds = p.rounds[1:]
	return out, nil
}

type eventLog struct {
	events []Event
}

func (l *eventLog) Observe(ev Event) { l.events = append(l.events, ev) }

type recorderFunc func(State) error

func (f recorderFunc) Record(s State) error { return f(s) }

func entryIDs(es []space.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}
