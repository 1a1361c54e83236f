// Package evolve runs the propose, score and select loop over a search space
package evolve

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/parameter"
	"github.com/lixenwraith/tmc-evolve/space"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

// ErrInvalidRun is returned when a run cannot start with the given settings
var ErrInvalidRun = errors.New("evolve: invalid run")

// RunConfig holds the size parameters of a run
type RunConfig struct {
	RunID      string
	Iterations int
	Population int
	Offspring  int
	Seed       uint64
	Strategy   Strategy
}

// DefaultRunConfig mirrors the command line defaults
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Iterations: parameter.DefaultIterations,
		Population: parameter.DefaultPopulation,
		Offspring:  parameter.DefaultOffspring,
		Seed:       parameter.DefaultSeed,
		Strategy:   StrategyAll,
	}
}

// State is the resumable state of a run
type State struct {
	// Iteration counts completed rounds
	Iteration int
	Current   []space.Entry
	History   []space.Entry
}

// Optimizer drives one run
// It is not safe for concurrent use
type Optimizer struct {
	space     *space.Space
	objective objective.Objective
	proposer  Proposer
	config    RunConfig

	rng       genetic.Rand
	logger    logging.Logger
	observers []Observer
	recorder  Recorder
	state     *State
	best      float64
}

// Option configures an Optimizer
type Option func(*Optimizer)

// WithLogger sets the logger, nil keeps the no-op default
func WithLogger(l logging.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an observer; observers are notified in order
func WithObserver(obs Observer) Option {
	return func(o *Optimizer) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithRecorder sets the state recorder
func WithRecorder(r Recorder) Option {
	return func(o *Optimizer) { o.recorder = r }
}

// WithRand overrides the loop's random source used for initial sampling and shuffling
// Panics if r is nil
func WithRand(r genetic.Rand) Option {
	if r == nil {
		panic("evolve: WithRand(nil)")
	}
	return func(o *Optimizer) { o.rng = r }
}

// WithState resumes from a saved state instead of sampling a new population
// Without WithRand the loop source is seeded with cfg.Seed plus s.Iteration
func WithState(s State) Option {
	return func(o *Optimizer) {
		o.state = &State{
			Iteration: s.Iteration,
			Current:   append([]space.Entry(nil), s.Current...),
			History:   append([]space.Entry(nil), s.History...),
		}
	}
}

// New validates the run settings and returns an optimizer
func New(sp *space.Space, obj objective.Objective, p Proposer, cfg RunConfig, opts ...Option) (*Optimizer, error) {
	switch {
	case sp == nil || obj == nil || p == nil:
		return nil, fmt.Errorf("%w: space, objective and proposer are required", ErrInvalidRun)
	case cfg.Iterations < 0:
		return nil, fmt.Errorf("%w: iterations %d < 0", ErrInvalidRun, cfg.Iterations)
	case cfg.Population < 1:
		return nil, fmt.Errorf("%w: population %d < 1", ErrInvalidRun, cfg.Population)
	case cfg.Population > sp.Len():
		return nil, fmt.Errorf("%w: population %d exceeds space of %d", ErrInvalidRun, cfg.Population, sp.Len())
	}

	o := &Optimizer{
		space:     sp,
		objective: obj,
		proposer:  p,
		config:    cfg,
		logger:    logging.NoOpLogger{},
		best:      math.Inf(-1),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		// A resumed run continues on a stream offset by the completed rounds
		seed := cfg.Seed
		if o.state != nil {
			seed += uint64(o.state.Iteration)
		}
		o.rng = genetic.NewSeeded(seed)
	}
	return o, nil
}

// State returns a snapshot of the run state, nil before Run starts
func (o *Optimizer) State() *State {
	if o.state == nil {
		return nil
	}
	s := *o.state
	s.Current = append([]space.Entry(nil), o.state.Current...)
	s.History = append([]space.Entry(nil), o.state.History...)
	return &s
}

// Run executes the remaining iterations
// On cancellation the state reached so far is returned with the context error
func (o *Optimizer) Run(ctx context.Context) (*State, error) {
	if o.state == nil {
		if err := o.initialize(); err != nil {
			return nil, err
		}
	} else {
		o.logger.Infof("resuming at iteration %d with %d history rows", o.state.Iteration, len(o.state.History))
		if st := o.summarize(o.state.Current); st.Count > 0 {
			o.best = st.Best
		}
	}

	for i := o.state.Iteration; i < o.config.Iterations; i++ {
		select {
		case <-ctx.Done():
			return o.State(), ctx.Err()
		default:
		}

		ev, err := o.step(ctx, i)
		if err != nil {
			return o.State(), err
		}
		o.state.Iteration = i + 1

		if err := o.record(); err != nil {
			return o.State(), err
		}
		o.notify(ev)
	}

	o.logger.Infof("===== End =====")
	return o.State(), nil
}

// initialize samples the starting population, tagged as iteration 0
func (o *Optimizer) initialize() error {
	initial, err := o.space.Sample(o.config.Population, o.rng)
	if err != nil {
		return fmt.Errorf("evolve: initial population: %w", err)
	}

	o.state = &State{
		Current: initial,
		History: append([]space.Entry(nil), initial...),
	}
	if err := o.record(); err != nil {
		return err
	}

	ev := o.event(0)
	ev.Matched = initial
	if ev.Stats.Count > 0 {
		o.best = ev.Stats.Best
	}
	o.notify(ev)
	return nil
}

// step runs iteration i and returns its event
func (o *Optimizer) step(ctx context.Context, i int) (Event, error) {
	parents := o.config.Strategy.Parents(o.state.Current, o.state.History, o.rng)

	proposals, err := o.proposer.Propose(ctx, space.Complexes(parents), o.config.Offspring)
	if err != nil {
		return Event{}, fmt.Errorf("evolve: iteration %d: propose: %w", i, err)
	}
	encodings := tmc.Encodings(proposals)

	matched := o.space.Lookup(proposals)
	if len(matched) == 0 {
		o.logger.Warnf("no match: %v", encodings)
		ev := o.event(i + 1)
		ev.Proposed = encodings
		ev.NoMatch = true
		return ev, nil
	}

	for j := range matched {
		matched[j] = matched[j].WithIter(i + 1)
	}
	o.logger.Infof("%d, proposed: %v, %v", i, encodings, o.primaryValues(matched))

	o.state.History = append(o.state.History, matched...)
	o.state.Current = o.objective.Select(o.state.History, o.config.Population)
	o.logCurrent()

	ev := o.event(i + 1)
	ev.Proposed = encodings
	ev.Matched = matched
	if ev.Stats.Count > 0 && ev.Stats.Best > o.best {
		ev.NewBest = true
		o.best = ev.Stats.Best
	}
	return ev, nil
}

func (o *Optimizer) event(iteration int) Event {
	return Event{
		RunID:     o.config.RunID,
		Objective: o.objective.Name(),
		Iteration: iteration,
		Total:     o.config.Iterations,
		Current:   append([]space.Entry(nil), o.state.Current...),
		Stats:     o.summarize(o.state.Current),
	}
}

func (o *Optimizer) summarize(entries []space.Entry) genetic.Stats[float64] {
	scores := make([]float64, 0, len(entries))
	for _, e := range entries {
		if s := o.objective.Score(e); !math.IsNaN(s) {
			scores = append(scores, s)
		}
	}
	return genetic.Summarize(scores)
}

func (o *Optimizer) primaryValues(entries []space.Entry) []float64 {
	prop := o.objective.Props()[0]
	out := make([]float64, len(entries))
	for i, e := range entries {
		v, ok := e.Value(prop)
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func (o *Optimizer) logCurrent() {
	o.logger.Infof("current: %d rows", len(o.state.Current))
	for _, e := range o.state.Current {
		o.logger.Debugf("  %s score=%.6g iter=%d", e.ID, o.objective.Score(e), e.Iter)
	}
}

func (o *Optimizer) record() error {
	if o.recorder == nil {
		return nil
	}
	if err := o.recorder.Record(*o.State()); err != nil {
		return fmt.Errorf("evolve: record iteration %d: %w", o.state.Iteration, err)
	}
	return nil
}

func (o *Optimizer) notify(ev Event) {
	for _, obs := range o.observers {
		obs.Observe(ev)
	}
}
