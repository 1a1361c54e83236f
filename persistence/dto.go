package persistence

import (
	"fmt"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/space"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

// CheckpointDTO is the serializable run state
type CheckpointDTO struct {
	RunID      string     `toml:"run_id"`
	Objective  string     `toml:"objective"`
	Strategy   string     `toml:"strategy"`
	Seed       int64      `toml:"seed"`
	Population int        `toml:"population"`
	Offspring  int        `toml:"num_offspring"`
	Iteration  int        `toml:"iteration"`
	Props      []string   `toml:"props"`
	Current    []EntryDTO `toml:"current"`
	History    []EntryDTO `toml:"history"`
}

// EntryDTO is a serializable space entry
type EntryDTO struct {
	ID      string             `toml:"id"`
	Ligands []string           `toml:"ligands"`
	Props   map[string]float64 `toml:"props"`
	Iter    int                `toml:"iter"`
}

// FromState converts run state to DTO
func FromState(st evolve.State) CheckpointDTO {
	return CheckpointDTO{
		Iteration: st.Iteration,
		Current:   fromEntries(st.Current),
		History:   fromEntries(st.History),
	}
}

// ToState converts DTO back to run state
func (dto CheckpointDTO) ToState() (evolve.State, error) {
	current, err := toEntries(dto.Current)
	if err != nil {
		return evolve.State{}, err
	}
	history, err := toEntries(dto.History)
	if err != nil {
		return evolve.State{}, err
	}
	return evolve.State{
		Iteration: dto.Iteration,
		Current:   current,
		History:   history,
	}, nil
}

func fromEntries(entries []space.Entry) []EntryDTO {
	out := make([]EntryDTO, len(entries))
	for i, e := range entries {
		ligs := make([]string, len(e.Ligands))
		for j, l := range e.Ligands {
			ligs[j] = string(l)
		}
		out[i] = EntryDTO{
			ID:      e.ID,
			Ligands: ligs,
			Props:   e.Props,
			Iter:    e.Iter,
		}
	}
	return out
}

func toEntries(dtos []EntryDTO) ([]space.Entry, error) {
	out := make([]space.Entry, len(dtos))
	for i, d := range dtos {
		if len(d.Ligands) != len(tmc.Complex{}) {
			return nil, fmt.Errorf("%w: entry %q has %d ligands", ErrCorruptCheckpoint, d.ID, len(d.Ligands))
		}
		props := d.Props
		if props == nil {
			props = map[string]float64{}
		}
		out[i] = space.Entry{
			ID:      d.ID,
			Ligands: tmc.FromSlots(d.Ligands[0], d.Ligands[1], d.Ligands[2], d.Ligands[3]),
			Props:   props,
			Iter:    d.Iter,
		}
	}
	return out, nil
}
