// Package objective ranks scored complexes and picks the next population
package objective

import (
	"fmt"
	"math"
	"sort"

	"github.com/lixenwraith/tmc-evolve/space"
)

// Property names in the ground-truth table
const (
	PropGap            = "gap"
	PropPolarisability = "polarisability"
)

// Objective names accepted by Parse
const (
	NameGap            = "gap"
	NamePolarisability = "polarisability"
	NamePareto         = "pf"
	NameProduct        = "mb"
	NameRatio          = "mpsg"
)

// Objective scores entries and selects survivors
type Objective interface {
	// Name returns the configuration name
	Name() string
	// Props lists the table properties the objective reads
	Props() []string
	// Score returns a scalar for ranking and reporting, NaN when undefined
	Score(e space.Entry) float64
	// Select picks the next population of at most n entries from the history
	Select(history []space.Entry, n int) []space.Entry
}

// Parse returns the objective registered under name
func Parse(name string) (Objective, error) {
	switch name {
	case NameGap:
		return single(NameGap, PropGap), nil
	case NamePolarisability:
		return single(NamePolarisability, PropPolarisability), nil
	case NameProduct:
		return &ranked{name: NameProduct, props: bothProps, score: product}, nil
	case NameRatio:
		return &ranked{name: NameRatio, props: bothProps, score: ratio}, nil
	case NamePareto:
		return &pareto{}, nil
	default:
		return nil, fmt.Errorf("objective: unknown property %q", name)
	}
}

// Names lists every objective in a stable order
func Names() []string {
	return []string{NameGap, NamePolarisability, NamePareto, NameProduct, NameRatio}
}

var bothProps = []string{PropGap, PropPolarisability}

func single(name, prop string) *ranked {
	return &ranked{
		name:  name,
		props: []string{prop},
		score: func(e space.Entry) float64 { return value(e, prop) },
	}
}

func value(e space.Entry, prop string) float64 {
	v, ok := e.Value(prop)
	if !ok {
		return math.NaN()
	}
	return v
}

func product(e space.Entry) float64 {
	return value(e, PropGap) * value(e, PropPolarisability)
}

// ratio favours large polarisability at small gap
func ratio(e space.Entry) float64 {
	return value(e, PropPolarisability) / value(e, PropGap)
}

// ranked keeps the n best distinct entries by a scalar score
type ranked struct {
	name  string
	props []string
	score func(space.Entry) float64
}

func (r *ranked) Name() string                { return r.name }
func (r *ranked) Props() []string             { return r.props }
func (r *ranked) Score(e space.Entry) float64 { return r.score(e) }

// Select drops repeated ids (first occurrence wins) and undefined scores,
// then keeps the n largest; ties keep history order
func (r *ranked) Select(history []space.Entry, n int) []space.Entry {
	type scored struct {
		entry space.Entry
		score float64
	}

	seen := make(map[string]bool, len(history))
	pool := make([]scored, 0, len(history))
	for _, e := range history {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		s := r.score(e)
		if math.IsNaN(s) {
			continue
		}
		pool = append(pool, scored{entry: e, score: s})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	if n < len(pool) {
		pool = pool[:n]
	}
	out := make([]space.Entry, len(pool))
	for i, p := range pool {
		out[i] = p.entry
	}
	return out
}

// pareto keeps the non-dominated front of gap and polarisability, both maximised
// The front is taken over the full history and is not truncated to n
type pareto struct{}

func (pareto) Name() string                { return NamePareto }
func (pareto) Props() []string             { return bothProps }
func (pareto) Score(e space.Entry) float64 { return product(e) }

func (pareto) Select(history []space.Entry, _ int) []space.Entry {
	sorted := make([]space.Entry, 0, len(history))
	for _, e := range history {
		if math.IsNaN(value(e, PropGap)) || math.IsNaN(value(e, PropPolarisability)) {
			continue
		}
		sorted = append(sorted, e)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i], PropGap) > value(sorted[j], PropGap)
	})

	front := make([]space.Entry, 0)
	best := math.Inf(-1)
	for _, e := range sorted {
		if p := value(e, PropPolarisability); p > best {
			front = append(front, e)
			best = p
		}
	}
	return front
}
