package evolve

import (
	"fmt"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/space"
)

// Strategy chooses which rows parent the next round of proposals
type Strategy int

const (
	// StrategyAll draws from every distinct row seen so far, shuffled
	StrategyAll Strategy = iota
	// StrategyBest draws from the current population only
	StrategyBest
	// StrategyConst always draws from the initial population
	StrategyConst
)

// String returns the configuration name
func (s Strategy) String() string {
	switch s {
	case StrategyAll:
		return "all"
	case StrategyBest:
		return "best"
	case StrategyConst:
		return "const"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy reads a strategy name
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "all":
		return StrategyAll, nil
	case "best":
		return StrategyBest, nil
	case "const":
		return StrategyConst, nil
	default:
		return 0, fmt.Errorf("evolve: unknown strategy %q", name)
	}
}

// Parents returns the parent rows for one round
// The returned slice never aliases current or history
func (s Strategy) Parents(current, history []space.Entry, rng genetic.Rand) []space.Entry {
	switch s {
	case StrategyBest:
		return append([]space.Entry(nil), current...)

	case StrategyConst:
		var out []space.Entry
		for _, e := range history {
			if e.Iter == 0 {
				out = append(out, e)
			}
		}
		return out

	default:
		out := dedupe(history)
		shuffle(rng, out)
		return out
	}
}

// dedupe keeps the first row for every id
func dedupe(entries []space.Entry) []space.Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]space.Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

func shuffle(rng genetic.Rand, entries []space.Entry) {
	for i := len(entries) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}
