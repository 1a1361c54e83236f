package evolve

import (
	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/space"
)

// Event describes one finished round of a run
// Iteration 0 is the initial population
type Event struct {
	RunID     string
	Objective string
	Iteration int
	Total     int

	// Proposed holds the encodings returned by the proposer
	Proposed []string
	// Matched holds the rows found in the search space, tagged with Iteration
	Matched []space.Entry
	// Current is the population after selection
	Current []space.Entry

	// Stats summarises objective scores of Current, undefined scores excluded
	Stats   genetic.Stats[float64]
	NoMatch bool
	NewBest bool
}

// Observer receives events synchronously from the run loop
// Implementations must not block
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

// Observe calls f(ev)
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Recorder persists run state after every round
// A Record error stops the run
type Recorder interface {
	Record(State) error
}
