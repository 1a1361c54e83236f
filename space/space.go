// Package space holds the precomputed ground-truth table that scores
// proposed complexes, plus the ligand catalog that supplies their charges.
package space

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

var (
	// ErrMissingColumn is returned when a required CSV column is absent
	ErrMissingColumn = errors.New("space: missing column")
	// ErrSampleTooLarge is returned when more entries are requested than exist
	ErrSampleTooLarge = errors.New("space: sample larger than space")
)

// Entry is one row of the search space or of a run's sample history
type Entry struct {
	ID      string
	Ligands tmc.Complex
	Props   map[string]float64
	Iter    int
}

// Value returns a property value
func (e Entry) Value(prop string) (float64, bool) {
	v, ok := e.Props[prop]
	return v, ok
}

// WithIter returns a copy of e tagged with the iteration that produced it
func (e Entry) WithIter(iter int) Entry {
	e.Iter = iter
	return e
}

// Space is an immutable, indexed set of entries
type Space struct {
	entries []Entry
	props   []string
	index   map[tmc.Complex][]int
}

// New indexes entries by their exact ligand sequence
// props lists property columns in output order
func New(entries []Entry, props []string) *Space {
	s := &Space{
		entries: entries,
		props:   props,
		index:   make(map[tmc.Complex][]int, len(entries)),
	}
	for i, e := range entries {
		s.index[e.Ligands] = append(s.index[e.Ligands], i)
	}
	return s
}

// Len returns the number of entries
func (s *Space) Len() int { return len(s.entries) }

// Entries returns all entries in file order
func (s *Space) Entries() []Entry { return s.entries }

// Props returns the property column names
func (s *Space) Props() []string { return s.props }

// Find returns the entries matching c under cyclic rotation
// Rotations are tried in order starting from c itself; the rows of the first
// matching rotation are returned
func (s *Space) Find(c tmc.Complex) []Entry {
	for k := 0; k < parameter.LigandSlots; k++ {
		rows, ok := s.index[c.Rotate(k)]
		if !ok {
			continue
		}
		out := make([]Entry, len(rows))
		for i, idx := range rows {
			out[i] = s.entries[idx]
		}
		return out
	}
	return nil
}

// Lookup finds every proposal, skipping misses
// Returns nil when nothing matched
func (s *Space) Lookup(proposals []tmc.Complex) []Entry {
	var matched []Entry
	for _, c := range proposals {
		matched = append(matched, s.Find(c)...)
	}
	return matched
}

// Sample draws n distinct entries, tagged as iteration 0
func (s *Space) Sample(n int, rng genetic.Rand) ([]Entry, error) {
	if n > len(s.entries) {
		return nil, fmt.Errorf("%w: %d > %d", ErrSampleTooLarge, n, len(s.entries))
	}

	idx := genetic.SampleIndices(rng, len(s.entries), n)
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = s.entries[j].WithIter(0)
	}
	return out, nil
}

// Complexes returns the ligand sequences of entries in order
func Complexes(entries []Entry) []tmc.Complex {
	out := make([]tmc.Complex, len(entries))
	for i, e := range entries {
		out[i] = e.Ligands
	}
	return out
}
